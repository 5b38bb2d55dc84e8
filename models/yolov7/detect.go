package yolov7

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/inference"
	"github.com/nvr-ai/go-yolo/models/postprocess"
	"github.com/nvr-ai/go-yolo/profiler"
)

// Detection stages recorded by Detect.
const (
	StagePreprocess  = "preprocess"
	StageInference   = "inference"
	StagePostprocess = "postprocess"
)

// Detect runs the complete pipeline on one image: letterbox, input tensor
// conversion, inference and postprocessing.
//
// Arguments:
//   - ctx: Passed to the engine.
//   - img: The original image.
//   - engine: Produces one raw tensor per stride from the letterboxed input.
//
// Returns:
//   - []postprocess.Detection: Detections in original image coordinates.
//   - *profiler.Stopwatch: The stage timings of this run.
//   - error: A configuration error, or an inference failure wrapping the engine error.
func (m *YOLOv7) Detect(ctx context.Context, img image.Image, engine inference.Engine) ([]postprocess.Detection, *profiler.Stopwatch, error) {
	sw := profiler.NewStopwatch()
	if img == nil {
		return nil, sw, common.Configurationf("image is nil")
	}

	bounds := img.Bounds()

	done := sw.Start(StagePreprocess)
	lb, err := m.Letterbox(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, sw, err
	}
	input := images.ToTensor(images.LetterboxImage(img, lb, nil))
	done()

	m.logger.WithFields(logrus.Fields{
		"width":  lb.OriginalWidth,
		"height": lb.OriginalHeight,
		"padded": []int{lb.PaddedWidth, lb.PaddedHeight},
		"scale":  lb.Scale,
	}).Debug("letterboxed input")

	done = sw.Start(StageInference)
	raw, err := engine.Run(ctx, input)
	done()
	if err != nil {
		if errors.Is(err, common.ErrInference) || errors.Is(err, common.ErrConfiguration) {
			return nil, sw, err
		}
		return nil, sw, common.Inference(err, "engine run")
	}
	if len(raw) != len(m.options.Strides) {
		return nil, sw, common.Inference(
			errors.Errorf("engine returned %d tensors, want %d", len(raw), len(m.options.Strides)), "engine outputs")
	}

	outputs := make([]*postprocess.FeatureTensor, len(raw))
	for i, d := range raw {
		outputs[i], err = postprocess.FeatureTensorFromDense(d)
		if err != nil {
			return nil, sw, common.Inference(err, m.options.OutputNames[i])
		}
	}

	done = sw.Start(StagePostprocess)
	detections, err := m.PostProcess(outputs, lb)
	done()
	if err != nil {
		return nil, sw, err
	}

	m.logger.WithFields(logrus.Fields(sw.Fields())).
		WithField("detections", len(detections)).
		Info("detection complete")

	return detections, sw, nil
}
