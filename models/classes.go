// Package models - Class label tables for detection models.
package models

import (
	"strconv"

	"github.com/nvr-ai/go-yolo/models/model"
)

// ClassSet is the ordered label list of one model family. A detection label
// indexes directly into Names.
type ClassSet struct {
	Family model.Family
	Names  []string
}

// Name returns the label at idx and whether idx is in range.
func (s ClassSet) Name(idx int) (string, bool) {
	if idx < 0 || idx >= len(s.Names) {
		return "", false
	}
	return s.Names[idx], true
}

// YOLOClasses is the 80 COCO classes indexed from 0, as emitted by YOLO heads.
var YOLOClasses = ClassSet{
	Family: model.ModelFamilyYOLO,
	Names: []string{
		"person", "bicycle", "car", "motorcycle",
		"airplane", "bus", "train", "truck",
		"boat", "traffic light", "fire hydrant", "stop sign",
		"parking meter", "bench", "bird", "cat",
		"dog", "horse", "sheep", "cow",
		"elephant", "bear", "zebra", "giraffe",
		"backpack", "umbrella", "handbag", "tie",
		"suitcase", "frisbee", "skis", "snowboard",
		"sports ball", "kite", "baseball bat", "baseball glove",
		"skateboard", "surfboard", "tennis racket", "bottle",
		"wine glass", "cup", "fork", "knife",
		"spoon", "bowl", "banana", "apple",
		"sandwich", "orange", "broccoli", "carrot",
		"hot dog", "pizza", "donut", "cake",
		"chair", "couch", "potted plant", "bed",
		"dining table", "toilet", "tv", "laptop",
		"mouse", "remote", "keyboard", "cell phone",
		"microwave", "oven", "toaster", "sink",
		"refrigerator", "book", "clock", "vase",
		"scissors", "teddy bear", "hair drier", "toothbrush",
	},
}

// ClassName returns the YOLO name for a label index, or the index itself when
// it is out of range.
func ClassName(idx int) string {
	if name, ok := YOLOClasses.Name(idx); ok {
		return name
	}
	return strconv.Itoa(idx)
}
