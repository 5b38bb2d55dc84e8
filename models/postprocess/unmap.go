package postprocess

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-yolo/images"
)

// UnmapRect maps a rectangle from padded image space back to the original image
// and clamps its corners to [0, W-1] x [0, H-1].
//
// The result may be empty (zero or negative size) after clipping; it is returned
// as is.
func UnmapRect(r images.Rect, lb images.Letterbox) images.Rect {
	inv := lb.Inverse(r)

	maxX := float32(lb.OriginalWidth - 1)
	maxY := float32(lb.OriginalHeight - 1)

	x0 := clamp(inv.X, 0, maxX)
	y0 := clamp(inv.Y, 0, maxY)
	x1 := clamp(inv.Right(), 0, maxX)
	y1 := clamp(inv.Bottom(), 0, maxY)

	return images.RectFromCorners(x0, y0, x1, y1)
}

// Unmap rewrites every detection's box in place from padded image space to
// original image space. Empty boxes are kept.
func Unmap(dets []Detection, lb images.Letterbox) {
	for i := range dets {
		dets[i].Box = UnmapRect(dets[i].Box, lb)
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(math32.Min(v, hi), lo)
}
