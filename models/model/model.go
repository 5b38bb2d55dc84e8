// Package model - Shared model identifiers and the detection model contract.
package model

import (
	"github.com/nvr-ai/go-yolo/images"
	"github.com/nvr-ai/go-yolo/models/postprocess"
)

// Family is the label set a model is trained on.
type Family string

const (
	// ModelFamilyYOLO is the 80 COCO classes indexed from 0, no background.
	ModelFamilyYOLO Family = "yolo"
)

// Name is the unique identifier of a model.
type Name string

const (
	// ModelNameYOLOv7 is the name of the YOLOv7 model.
	ModelNameYOLOv7 Name = "yolov7"
)

// Model turns raw per-stride head outputs into detections in original image space.
type Model interface {
	// Name returns the model identifier.
	Name() Name
	// Family returns the label set of the model.
	Family() Family
	// Letterbox computes the input transform for an image of the given size.
	Letterbox(width, height int) (images.Letterbox, error)
	// PostProcess decodes, filters and unmaps the head outputs.
	PostProcess(outputs []*postprocess.FeatureTensor, lb images.Letterbox) ([]postprocess.Detection, error)
}
