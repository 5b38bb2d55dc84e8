package yolov7

import (
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/models/postprocess"
)

// DefaultAnchors are the nine YOLOv7 anchor shapes, three per stride.
var DefaultAnchors = []float32{12, 16, 19, 36, 40, 28, 36, 75, 76, 55, 72, 146, 142, 110, 192, 243, 459, 401}

// Options is the options for the YOLOv7 model.
type Options struct {
	// ModelPath is the ONNX model file, passed through to the inference engine.
	ModelPath string `json:"model_path" yaml:"model_path"`
	// InputName is the image input node of the network.
	InputName string `json:"input_name" yaml:"input_name" validate:"required"`
	// OutputNames are the head output nodes, in stride order.
	OutputNames []string `json:"output_names" yaml:"output_names" validate:"required,dive,required"`
	// TargetSize is the size the longer image side is scaled to.
	TargetSize int `json:"target_size" yaml:"target_size" validate:"gt=0"`
	// NumClasses is the number of class logits per anchor.
	NumClasses int `json:"num_classes" yaml:"num_classes" validate:"gt=0"`
	// ProbThreshold is the minimum detection confidence.
	ProbThreshold float32 `json:"prob_threshold" yaml:"prob_threshold" validate:"gt=0,lt=1"`
	// NMSThreshold is the IoU above which overlapping boxes are suppressed.
	NMSThreshold float32 `json:"nms_threshold" yaml:"nms_threshold" validate:"gte=0,lte=1"`
	// Agnostic makes boxes of different labels suppress each other.
	Agnostic bool `json:"agnostic" yaml:"agnostic"`
	// Anchors are width,height pairs, split evenly across Strides.
	Anchors []float32 `json:"anchors" yaml:"anchors" validate:"required,dive,gt=0"`
	// Strides are the downsampling factors of the detection heads.
	Strides []int `json:"strides" yaml:"strides" validate:"required,dive,gt=0"`
	// MaxStride is the multiple the letterboxed input is padded to.
	MaxStride int `json:"max_stride" yaml:"max_stride" validate:"gt=0"`
	// Workers bounds the goroutines used to sort large proposal lists.
	Workers int `json:"workers" yaml:"workers" validate:"gte=0"`
}

// DefaultOptions returns the options of the reference YOLOv7 COCO export.
func DefaultOptions() Options {
	return Options{
		InputName:     "in0",
		OutputNames:   []string{"out0", "out1", "out2"},
		TargetSize:    640,
		NumClasses:    80,
		ProbThreshold: 0.25,
		NMSThreshold:  0.5,
		Anchors:       append([]float32(nil), DefaultAnchors...),
		Strides:       []int{8, 16, 32},
		MaxStride:     64,
		Workers:       runtime.NumCPU(),
	}
}

// Validate checks the options for consistency.
//
// Returns:
//   - error: A configuration error describing the first problem found.
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return common.Configurationf("invalid yolov7 options: %v", err)
	}
	if len(o.OutputNames) != len(o.Strides) {
		return common.Configurationf("%d output names for %d strides", len(o.OutputNames), len(o.Strides))
	}
	if _, err := postprocess.ParseAnchors(o.Anchors, len(o.Strides)); err != nil {
		return err
	}
	for _, s := range o.Strides {
		if o.MaxStride%s != 0 {
			return common.Configurationf("max stride %d is not a multiple of stride %d", o.MaxStride, s)
		}
	}
	return nil
}

// letterbox computes the input transform for an image.
func (o Options) letterbox(width, height int) (images.Letterbox, error) {
	return images.NewLetterbox(width, height, o.TargetSize, o.MaxStride)
}
