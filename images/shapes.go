// Package images - Image geometry and letterbox utilities.
package images

import "github.com/chewxy/math32"

// Rect is a floating point bounding box in top-left/width/height form.
//
// X+Width and Y+Height are exclusive (like image.Rectangle).
type Rect struct {
	X, Y, Width, Height float32
}

// RectFromCorners builds a Rect from its top-left and exclusive bottom-right corners.
func RectFromCorners(x0, y0, x1, y1 float32) Rect {
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Right returns the exclusive right edge.
func (r Rect) Right() float32 {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float32 {
	return r.Y + r.Height
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area of the rectangle, or 0 when it is empty.
func (r Rect) Area() float32 {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Intersect returns the largest rectangle contained by both r and o.
//
// If the two rectangles do not overlap the zero Rect is returned.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math32.Max(r.X, o.X)
	y0 := math32.Max(r.Y, o.Y)
	x1 := math32.Min(r.Right(), o.Right())
	y1 := math32.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return RectFromCorners(x0, y0, x1, y1)
}

// IntersectionArea returns the area shared by r and o.
func (r Rect) IntersectionArea(o Rect) float32 {
	return r.Intersect(o).Area()
}

// CalculateIoU (Intersection over Union) measures the extent of overlap between
// two bounding boxes.
//
//	IoU = Area of Intersection / Area of Union
//
//	- A value of 1.0 means the rectangles are identical.
//	- A value of 0.0 means the rectangles don't overlap at all.
//
// The union is computed with inclusion-exclusion:
//
//	Area(Union) = Area(A) + Area(B) - Area(Intersection)
//
// Degenerate inputs (zero-area rectangles, a zero union) yield 0 rather than NaN.
//
// Arguments:
//   - r: The first rectangle.
//   - o: The other rectangle to compare against.
//
// Returns:
//   - float32: A value between 0.0 and 1.0 representing the IoU score.
//
// Example Usage:
// ```go
//
//	rect1 := Rect{X: 0, Y: 0, Width: 10, Height: 10}
//	rect2 := Rect{X: 5, Y: 5, Width: 10, Height: 10}
//
//	iouScore := CalculateIoU(rect1, rect2) // 25 / 175 = 0.142857
//
// ```
func CalculateIoU(r, o Rect) float32 {
	inter := r.IntersectionArea(o)
	if inter <= 0 {
		return 0
	}
	return IoUFromAreas(inter, r.Area(), o.Area())
}

// IoUFromAreas computes the IoU from a precomputed intersection area and the two
// rectangle areas. A non-positive union yields 0.
func IoUFromAreas(inter, areaA, areaB float32) float32 {
	union := areaA + areaB - inter
	if union <= 0 || inter <= 0 {
		return 0
	}
	return inter / union
}
