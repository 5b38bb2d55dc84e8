package images

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-yolo/common"
)

// Letterbox describes how an image of arbitrary aspect ratio is resized and padded
// to fit a square target whose sides are multiples of a stride constant.
//
// It is computed once per image and consumed both by the input preprocessing and
// by the coordinate unmapping after detection.
type Letterbox struct {
	// Scale maps original pixels to resized pixels. The longer original side maps
	// exactly to the target size.
	Scale float32 `json:"scale" yaml:"scale"`
	// PadLeft and PadTop are the offsets of the resized image inside the padded one.
	PadLeft int `json:"pad_left" yaml:"pad_left"`
	PadTop  int `json:"pad_top" yaml:"pad_top"`
	// PadRight and PadBottom complete the padding to the padded size.
	PadRight  int `json:"pad_right" yaml:"pad_right"`
	PadBottom int `json:"pad_bottom" yaml:"pad_bottom"`
	// ScaledWidth and ScaledHeight are the dimensions after resizing.
	ScaledWidth  int `json:"scaled_width" yaml:"scaled_width"`
	ScaledHeight int `json:"scaled_height" yaml:"scaled_height"`
	// PaddedWidth and PaddedHeight are the dimensions fed to the network.
	PaddedWidth  int `json:"padded_width" yaml:"padded_width"`
	PaddedHeight int `json:"padded_height" yaml:"padded_height"`
	// OriginalWidth and OriginalHeight are the source image dimensions.
	OriginalWidth  int `json:"original_width" yaml:"original_width"`
	OriginalHeight int `json:"original_height" yaml:"original_height"`
}

// NewLetterbox computes the letterbox transform for an image.
//
// Arguments:
//   - width, height: The original image dimensions.
//   - targetSize: The size the longer side is scaled to.
//   - stride: Padded dimensions are rounded up to a multiple of this value.
//
// Returns:
//   - Letterbox: The resize scale, pad offsets and resulting sizes.
//   - error: A configuration error for non-positive inputs.
//
// @example
// lb, err := NewLetterbox(1280, 720, 640, 32)
// // lb.Scale == 0.5, lb.ScaledHeight == 360, lb.PaddedHeight == 384, lb.PadTop == 12
func NewLetterbox(width, height, targetSize, stride int) (Letterbox, error) {
	if targetSize <= 0 {
		return Letterbox{}, common.Configurationf("target size must be positive, got %d", targetSize)
	}
	if stride <= 0 {
		return Letterbox{}, common.Configurationf("stride must be positive, got %d", stride)
	}
	if width <= 0 || height <= 0 {
		return Letterbox{}, common.Configurationf("invalid image dimensions: %dx%d", width, height)
	}

	scale := float32(targetSize) / float32(max(width, height))
	// Extreme aspect ratios keep at least one row and column of content.
	scaledW := max(1, int(math32.Round(float32(width)*scale)))
	scaledH := max(1, int(math32.Round(float32(height)*scale)))

	paddedW := roundUp(scaledW, stride)
	paddedH := roundUp(scaledH, stride)

	wpad := paddedW - scaledW
	hpad := paddedH - scaledH

	return Letterbox{
		Scale:          scale,
		PadLeft:        wpad / 2,
		PadTop:         hpad / 2,
		PadRight:       wpad - wpad/2,
		PadBottom:      hpad - hpad/2,
		ScaledWidth:    scaledW,
		ScaledHeight:   scaledH,
		PaddedWidth:    paddedW,
		PaddedHeight:   paddedH,
		OriginalWidth:  width,
		OriginalHeight: height,
	}, nil
}

// roundUp returns the smallest multiple of stride that is >= v.
func roundUp(v, stride int) int {
	return (v + stride - 1) / stride * stride
}

// Forward maps a rectangle from original image space into padded image space.
func (l Letterbox) Forward(r Rect) Rect {
	return Rect{
		X:      r.X*l.Scale + float32(l.PadLeft),
		Y:      r.Y*l.Scale + float32(l.PadTop),
		Width:  r.Width * l.Scale,
		Height: r.Height * l.Scale,
	}
}

// Inverse maps a rectangle from padded image space back into original image space
// without clipping.
func (l Letterbox) Inverse(r Rect) Rect {
	x0 := (r.X - float32(l.PadLeft)) / l.Scale
	y0 := (r.Y - float32(l.PadTop)) / l.Scale
	x1 := (r.Right() - float32(l.PadLeft)) / l.Scale
	y1 := (r.Bottom() - float32(l.PadTop)) / l.Scale
	return RectFromCorners(x0, y0, x1, y1)
}
