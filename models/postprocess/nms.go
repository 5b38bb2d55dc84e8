package postprocess

import "github.com/nvr-ai/go-yolo/images"

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	// IoUThreshold is the overlap above which a lower-confidence box is suppressed.
	IoUThreshold float32 `json:"iou_threshold" yaml:"iou_threshold"`
	// Agnostic suppresses overlapping boxes across classes when true. When false
	// only boxes with the same label suppress each other.
	Agnostic bool `json:"agnostic" yaml:"agnostic"`
}

// NMSSorted performs greedy Non-Maximum Suppression over detections that are
// already sorted by descending confidence.
//
// Each candidate is compared only against the candidates picked before it, so a
// box can never be suppressed by a lower-confidence one. A candidate is dropped
// when its IoU with any picked box (of the same label unless Agnostic) is strictly
// greater than the threshold.
//
// Arguments:
//   - dets: Detections sorted by descending confidence.
//   - config: NMS configuration.
//
// Returns:
//   - The indices of the kept detections, in input order.
func NMSSorted(dets []Detection, config NMSConfig) []int {
	n := len(dets)
	picked := make([]int, 0, n)

	areas := make([]float32, n)
	for i := range dets {
		areas[i] = dets[i].Box.Area()
	}

	for i := 0; i < n; i++ {
		a := &dets[i]

		keep := true
		for _, j := range picked {
			b := &dets[j]
			if !config.Agnostic && a.Label != b.Label {
				continue
			}

			inter := a.Box.IntersectionArea(b.Box)
			if images.IoUFromAreas(inter, areas[i], areas[j]) > config.IoUThreshold {
				keep = false
				break
			}
		}

		if keep {
			picked = append(picked, i)
		}
	}

	return picked
}

// ApplyNMS filters overlapping detections using Non-Maximum Suppression.
//
// Arguments:
//   - detections: Sorted slice of detections (highest score first).
//   - config: NMS configuration.
//
// Returns:
//   - Filtered slice of detections. If no detections are provided, returns nil.
func ApplyNMS(detections []Detection, config NMSConfig) []Detection {
	if len(detections) == 0 {
		return nil
	}

	picked := NMSSorted(detections, config)
	filtered := make([]Detection, len(picked))
	for i, idx := range picked {
		filtered[i] = detections[idx]
	}
	return filtered
}
