// Package yolov7 - YOLOv7 model.
package yolov7

import (
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/logging"
	"github.com/nvr-ai/go-yolo/models/model"
	"github.com/nvr-ai/go-yolo/models/postprocess"
)

// YOLOv7 is the instance of the YOLOv7 model.
//
// It holds only read-only configuration, so one instance may serve any number
// of concurrent detection runs.
type YOLOv7 struct {
	options Options
	anchors []postprocess.AnchorSet
	logger  logrus.FieldLogger
}

var _ model.Model = (*YOLOv7)(nil)

// NewModel creates a new model.
//
// Arguments:
//   - opts: The model options. Use DefaultOptions as a base.
//   - logger: Receives stage timings and debug output. Nil discards them.
//
// Returns:
//   - *YOLOv7: The model.
//   - error: A configuration error if the options are inconsistent.
//
// @example
// opts := yolov7.DefaultOptions()
// opts.ModelPath = "yolov7.onnx"
// m, err := yolov7.NewModel(opts, logger)
func NewModel(opts Options, logger logrus.FieldLogger) (*YOLOv7, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	anchors, err := postprocess.ParseAnchors(opts.Anchors, len(opts.Strides))
	if err != nil {
		return nil, err
	}

	return &YOLOv7{
		options: opts,
		anchors: anchors,
		logger:  logging.OrDiscard(logger),
	}, nil
}

// Options returns the options for the YOLOv7 model.
func (m *YOLOv7) Options() Options {
	return m.options
}

// Name returns the model identifier.
func (m *YOLOv7) Name() model.Name { return model.ModelNameYOLOv7 }

// Family returns the label set of the model.
func (m *YOLOv7) Family() model.Family { return model.ModelFamilyYOLO }

// Anchors returns the anchor set of each stride, in stride order.
func (m *YOLOv7) Anchors() []postprocess.AnchorSet {
	return m.anchors
}

// Letterbox computes the input transform for an image of the given size.
func (m *YOLOv7) Letterbox(width, height int) (images.Letterbox, error) {
	return m.options.letterbox(width, height)
}
