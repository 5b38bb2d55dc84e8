package images

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIoU_Correctness validates the IoU implementation against known test cases
func TestIoU_Correctness(t *testing.T) {
	tests := []struct {
		name     string
		r1       Rect
		r2       Rect
		expected float32
		epsilon  float32
	}{
		{
			name:     "Identical rectangles",
			r1:       Rect{0, 0, 100, 100},
			r2:       Rect{0, 0, 100, 100},
			expected: 1.0,
			epsilon:  0.001,
		},
		{
			name:     "No overlap",
			r1:       Rect{0, 0, 100, 100},
			r2:       Rect{200, 200, 100, 100},
			expected: 0.0,
			epsilon:  0.001,
		},
		{
			name:     "Touching edges",
			r1:       Rect{0, 0, 100, 100},
			r2:       Rect{100, 0, 100, 100},
			expected: 0.0,
			epsilon:  0.001,
		},
		{
			name:     "Half overlap",
			r1:       Rect{0, 0, 100, 100},
			r2:       Rect{50, 50, 100, 100},
			expected: 0.142857, // intersection=2500, union=10000+10000-2500=17500
			epsilon:  0.001,
		},
		{
			name:     "Small overlap",
			r1:       Rect{0, 0, 100, 100},
			r2:       Rect{90, 90, 100, 100},
			expected: 0.005025, // intersection=100, union=19900
			epsilon:  0.001,
		},
		{
			name:     "One inside other",
			r1:       Rect{0, 0, 100, 100},
			r2:       Rect{25, 25, 50, 50},
			expected: 0.25,
			epsilon:  0.001,
		},
		{
			name:     "Fractional overlap",
			r1:       Rect{0.5, 0.5, 2, 2},
			r2:       Rect{1.5, 1.5, 2, 2},
			expected: 1.0 / 7.0,
			epsilon:  0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateIoU(tt.r1, tt.r2)
			if math.Abs(float64(result-tt.expected)) > float64(tt.epsilon) {
				t.Errorf("IoU() = %v, expected %v (±%v)", result, tt.expected, tt.epsilon)
			}

			// Test symmetry: IoU(A, B) should equal IoU(B, A)
			reverse := CalculateIoU(tt.r2, tt.r1)
			if math.Abs(float64(result-reverse)) > float64(tt.epsilon) {
				t.Errorf("IoU not symmetric: IoU(A,B)=%v != IoU(B,A)=%v", result, reverse)
			}
		})
	}
}

// TestIoU_Degenerate checks that zero-area boxes never produce NaN or Inf.
func TestIoU_Degenerate(t *testing.T) {
	cases := []struct {
		name string
		r1   Rect
		r2   Rect
	}{
		{"both empty at same spot", Rect{10, 10, 0, 0}, Rect{10, 10, 0, 0}},
		{"empty inside box", Rect{10, 10, 0, 0}, Rect{0, 0, 100, 100}},
		{"negative width", Rect{10, 10, -5, 20}, Rect{0, 0, 100, 100}},
		{"zero height line", Rect{0, 50, 100, 0}, Rect{0, 0, 100, 100}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iou := CalculateIoU(tc.r1, tc.r2)
			assert.False(t, math.IsNaN(float64(iou)))
			assert.False(t, math.IsInf(float64(iou), 0))
			assert.Equal(t, float32(0), iou)
		})
	}

	assert.Equal(t, float32(0), IoUFromAreas(0, 0, 0))
}

// TestIoU_vs_ImageRectangle compares our implementation against image.Rectangle
func TestIoU_vs_ImageRectangle(t *testing.T) {
	testCases := []struct {
		name string
		r1   image.Rectangle
		r2   image.Rectangle
	}{
		{"No overlap", image.Rect(0, 0, 100, 100), image.Rect(200, 200, 300, 300)},
		{"Partial overlap", image.Rect(0, 0, 100, 100), image.Rect(50, 50, 150, 150)},
		{"Full overlap", image.Rect(50, 50, 150, 150), image.Rect(50, 50, 150, 150)},
		{"One inside other", image.Rect(0, 0, 100, 100), image.Rect(25, 25, 75, 75)},
		{"Large boxes", image.Rect(0, 0, 1920, 1080), image.Rect(960, 540, 1920, 1080)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			customResult := CalculateIoU(fromImageRect(tc.r1), fromImageRect(tc.r2))
			imageResult := imageRectangleIoU(tc.r1, tc.r2)

			if math.Abs(float64(customResult-imageResult)) > 0.0001 {
				t.Errorf("Results differ: custom=%v, image.Rectangle=%v", customResult, imageResult)
			}
		})
	}
}

func TestRect_Intersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 2, Width: 10, Height: 4}

	got := a.Intersect(b)
	assert.Equal(t, Rect{X: 5, Y: 2, Width: 5, Height: 4}, got)
	assert.Equal(t, float32(20), a.IntersectionArea(b))

	assert.Equal(t, Rect{}, a.Intersect(Rect{X: 20, Y: 20, Width: 1, Height: 1}))
	assert.True(t, Rect{X: 3, Y: 3, Width: 0, Height: 5}.Empty())
	assert.Equal(t, float32(10), a.Right())
	assert.Equal(t, float32(6), b.Bottom())
}

func fromImageRect(r image.Rectangle) Rect {
	return Rect{X: float32(r.Min.X), Y: float32(r.Min.Y), Width: float32(r.Dx()), Height: float32(r.Dy())}
}

// imageRectangleIoU implements IoU using Go's standard library image.Rectangle
func imageRectangleIoU(r1, r2 image.Rectangle) float32 {
	intersect := r1.Intersect(r2)
	if intersect.Empty() {
		return 0.0
	}

	intersectArea := intersect.Dx() * intersect.Dy()
	r1Area := r1.Dx() * r1.Dy()
	r2Area := r2.Dx() * r2.Dy()
	union := r1Area + r2Area - intersectArea

	return float32(intersectArea) / float32(union)
}
