package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/models/postprocess"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "person 90.0%", Label("person", 0.9))
	assert.Equal(t, "car 25.4%", Label("car", 0.2543))
}

func TestColorAt(t *testing.T) {
	assert.Len(t, Palette, 19)
	assert.Equal(t, Palette[0], ColorAt(0))
	assert.Equal(t, Palette[0], ColorAt(19))
	assert.Equal(t, Palette[3], ColorAt(41))
}

func TestLabelBox(t *testing.T) {
	text := image.Pt(60, 10)

	// Room above the box.
	got := LabelBox(image.Rect(100, 50, 200, 150), text, 4, 640)
	assert.Equal(t, image.Rect(100, 36, 160, 50), got)

	// Clamped to the top edge.
	got = LabelBox(image.Rect(100, 5, 200, 150), text, 4, 640)
	assert.Equal(t, 0, got.Min.Y)

	// Clamped to the right edge.
	got = LabelBox(image.Rect(600, 50, 639, 150), text, 4, 640)
	assert.Equal(t, 640, got.Max.X)
	assert.Equal(t, 580, got.Min.X)
}

func TestDraw(t *testing.T) {
	mat := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer mat.Close()

	dets := []postprocess.Detection{
		{Box: images.Rect{X: 10, Y: 20, Width: 50, Height: 40}, Label: 0, Confidence: 0.9},
	}
	Draw(&mat, dets, func(int) string { return "person" })

	// The box outline carries the first palette colour (BGR layout).
	px := mat.GetVecbAt(40, 10)
	assert.Equal(t, Palette[0].B, px[0])
	assert.Equal(t, Palette[0].G, px[1])
	assert.Equal(t, Palette[0].R, px[2])
}
