// Package render - Draws detections onto images with OpenCV.
package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-yolo/models/postprocess"
)

// Palette holds the box colours, used in turn for successive detections.
var Palette = []color.RGBA{
	{R: 244, G: 67, B: 54, A: 255},
	{R: 233, G: 30, B: 99, A: 255},
	{R: 156, G: 39, B: 176, A: 255},
	{R: 103, G: 58, B: 183, A: 255},
	{R: 63, G: 81, B: 181, A: 255},
	{R: 33, G: 150, B: 243, A: 255},
	{R: 3, G: 169, B: 244, A: 255},
	{R: 0, G: 188, B: 212, A: 255},
	{R: 0, G: 150, B: 136, A: 255},
	{R: 76, G: 175, B: 80, A: 255},
	{R: 139, G: 195, B: 74, A: 255},
	{R: 205, G: 220, B: 57, A: 255},
	{R: 255, G: 235, B: 59, A: 255},
	{R: 255, G: 193, B: 7, A: 255},
	{R: 255, G: 152, B: 0, A: 255},
	{R: 255, G: 87, B: 34, A: 255},
	{R: 121, G: 85, B: 72, A: 255},
	{R: 158, G: 158, B: 158, A: 255},
	{R: 96, G: 125, B: 139, A: 255},
}

const (
	fontFace      = gocv.FontHersheySimplex
	fontScale     = 0.4
	fontThickness = 1
	boxThickness  = 2
)

var textColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Label formats the caption of a detection, e.g. "person 90.0%".
func Label(name string, confidence float32) string {
	return fmt.Sprintf("%s %.1f%%", name, confidence*100)
}

// ColorAt returns the palette colour of the i-th drawn detection.
func ColorAt(i int) color.RGBA {
	return Palette[i%len(Palette)]
}

// LabelBox places a caption of the given text size above box, clamped so it
// starts at y >= 0 and does not run past the right edge of an image cols wide.
func LabelBox(box image.Rectangle, text image.Point, baseline, cols int) image.Rectangle {
	x := box.Min.X
	y := box.Min.Y - text.Y - baseline
	if y < 0 {
		y = 0
	}
	if x+text.X > cols {
		x = cols - text.X
	}
	return image.Rect(x, y, x+text.X, y+text.Y+baseline)
}

// Draw renders every detection onto mat: a box outline in the detection's
// palette colour and a filled caption with the class name and confidence.
//
// Arguments:
//   - mat: The BGR image to draw on, in original image coordinates.
//   - dets: The detections to draw.
//   - names: Maps a label index to its display name.
func Draw(mat *gocv.Mat, dets []postprocess.Detection, names func(int) string) {
	cols := mat.Cols()

	for i, d := range dets {
		c := ColorAt(i)
		box := image.Rect(
			int(d.Box.X), int(d.Box.Y),
			int(d.Box.X+d.Box.Width), int(d.Box.Y+d.Box.Height),
		)
		gocv.Rectangle(mat, box, c, boxThickness)

		text := Label(names(d.Label), d.Confidence)
		size, baseline := gocv.GetTextSizeWithBaseline(text, fontFace, fontScale, fontThickness)

		caption := LabelBox(box, size, baseline, cols)
		gocv.Rectangle(mat, caption, c, -1)
		gocv.PutText(mat, text, image.Pt(caption.Min.X, caption.Min.Y+size.Y),
			fontFace, fontScale, textColor, fontThickness)
	}
}
