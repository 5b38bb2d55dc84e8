// Package postprocess - Postprocessing utilities for anchor-based detector outputs.
package postprocess

import (
	"fmt"

	"github.com/nvr-ai/go-yolo/images"
)

// Detection represents a single detection result.
//
// The coordinate space of Box depends on the stage that produced it: decoded
// proposals are in padded image space, unmapped detections in original image space.
type Detection struct {
	// The bounding box of the detection.
	Box images.Rect `json:"box" yaml:"box"`
	// The predicted class index of the detection.
	Label int `json:"label" yaml:"label"`
	// The confidence score of the detection in [0, 1].
	Confidence float32 `json:"confidence" yaml:"confidence"`
}

func (d Detection) String() string {
	return fmt.Sprintf("%d = %.5f at %.2f %.2f %.2f x %.2f",
		d.Label, d.Confidence, d.Box.X, d.Box.Y, d.Box.Width, d.Box.Height)
}

// Aggregate concatenates the proposals decoded for each stride into one list.
func Aggregate(parts ...[]Detection) []Detection {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Detection, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
