package yolov7

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/models/postprocess"
)

// PostProcess postprocesses the outputs of the YOLOv7 model.
//
// The strides are decoded concurrently, one goroutine each. Proposals are
// aggregated only once every stride has finished, then sorted by descending
// confidence, filtered with NMS and mapped back to original image coordinates.
// If any stride fails the whole run fails and no detections are returned.
//
// Arguments:
//   - outputs: One feature tensor per stride, in stride order.
//   - lb: The letterbox used to prepare the network input.
//
// Returns:
//   - []postprocess.Detection: Detections in original image space, by descending confidence.
//   - error: A configuration error if the outputs do not match the model.
func (m *YOLOv7) PostProcess(outputs []*postprocess.FeatureTensor, lb images.Letterbox) ([]postprocess.Detection, error) {
	if len(outputs) != len(m.options.Strides) {
		return nil, common.Configurationf("got %d output tensors for %d strides", len(outputs), len(m.options.Strides))
	}

	parts := make([][]postprocess.Detection, len(outputs))
	errs := make([]error, len(outputs))

	var wg sync.WaitGroup
	for s, feat := range outputs {
		wg.Add(1)
		go func(s int, feat *postprocess.FeatureTensor) {
			defer wg.Done()
			parts[s], errs[s] = postprocess.DecodeProposals(feat, m.decodeConfig(s))
		}(s, feat)
	}
	wg.Wait()

	for s, err := range errs {
		if err != nil {
			return nil, err
		}
		m.logger.WithFields(logrus.Fields{
			"stride":    m.options.Strides[s],
			"proposals": len(parts[s]),
		}).Debug("decoded stride")
	}

	proposals := postprocess.Aggregate(parts...)
	postprocess.SortByConfidenceParallel(proposals, m.options.Workers)

	detections := postprocess.ApplyNMS(proposals, postprocess.NMSConfig{
		IoUThreshold: m.options.NMSThreshold,
		Agnostic:     m.options.Agnostic,
	})
	postprocess.Unmap(detections, lb)

	m.logger.WithFields(logrus.Fields{
		"proposals":  len(proposals),
		"detections": len(detections),
	}).Debug("postprocess complete")

	return detections, nil
}

func (m *YOLOv7) decodeConfig(s int) postprocess.DecodeConfig {
	return postprocess.DecodeConfig{
		Stride:        m.options.Strides[s],
		NumClasses:    m.options.NumClasses,
		ProbThreshold: m.options.ProbThreshold,
		Anchors:       m.anchors[s],
	}
}
