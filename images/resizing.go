package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"gorgonia.org/tensor"
)

// LetterboxFill is the constant border value used for padding (114 grey).
var LetterboxFill = color.RGBA{R: 114, G: 114, B: 114, A: 255}

// LetterboxImage resizes img to the letterbox's scaled size and pads it to the
// padded size with a constant fill colour, placing the resized content at
// (PadLeft, PadTop).
//
// Arguments:
//   - img: The original image; its bounds must match OriginalWidth x OriginalHeight.
//   - lb: The letterbox computed for img.
//   - fill: The padding colour. Nil selects LetterboxFill.
//
// Returns:
//   - *image.RGBA: The padded image of size PaddedWidth x PaddedHeight.
//
// @example
// lb, _ := NewLetterbox(img.Bounds().Dx(), img.Bounds().Dy(), 640, 64)
// padded := LetterboxImage(img, lb, nil)
func LetterboxImage(img image.Image, lb Letterbox, fill color.Color) *image.RGBA {
	if fill == nil {
		fill = LetterboxFill
	}

	resized := resize.Resize(uint(lb.ScaledWidth), uint(lb.ScaledHeight), img, resize.Bilinear)

	padded := image.NewRGBA(image.Rect(0, 0, lb.PaddedWidth, lb.PaddedHeight))
	draw.Draw(padded, padded.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	draw.Draw(padded,
		image.Rect(lb.PadLeft, lb.PadTop, lb.PadLeft+lb.ScaledWidth, lb.PadTop+lb.ScaledHeight),
		resized, resized.Bounds().Min, draw.Src)

	return padded
}

// ToTensor converts an image into a (1, 3, H, W) float32 tensor in RGB channel
// order with pixel values scaled to [0, 1].
//
// Arguments:
//   - img: The (letterboxed) image to convert.
//
// Returns:
//   - *tensor.Dense: The CHW tensor with a leading batch dimension of 1.
func ToTensor(img image.Image) *tensor.Dense {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	plane := width * height

	data := make([]float32, 3*plane)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := y*width + x
			data[idx] = float32(r>>8) / 255.0
			data[plane+idx] = float32(g>>8) / 255.0
			data[2*plane+idx] = float32(b>>8) / 255.0
		}
	}

	return tensor.New(tensor.WithShape(1, 3, height, width), tensor.WithBacking(data))
}
