package postprocess

import "github.com/nvr-ai/go-yolo/common"

// Anchor is a predefined prior box shape in padded image pixels.
type Anchor struct {
	Width  float32 `json:"width" yaml:"width"`
	Height float32 `json:"height" yaml:"height"`
}

// AnchorSet holds the anchors of one detection head, indexed by anchor slot.
type AnchorSet []Anchor

// ParseAnchors splits a flat list of width/height values into one AnchorSet per
// stride, in order.
//
// Arguments:
//   - flat: Alternating width,height values (e.g. 18 values for 3 strides x 3 anchors).
//   - strides: The number of detection heads.
//
// Returns:
//   - []AnchorSet: One set per stride.
//   - error: A configuration error if the values cannot be split evenly.
//
// @example
// sets, err := ParseAnchors([]float32{12, 16, 19, 36, 40, 28, 36, 75, 76, 55, 72, 146, 142, 110, 192, 243, 459, 401}, 3)
// // sets[0] == AnchorSet{{12, 16}, {19, 36}, {40, 28}}
func ParseAnchors(flat []float32, strides int) ([]AnchorSet, error) {
	if strides <= 0 {
		return nil, common.Configurationf("stride count must be positive, got %d", strides)
	}
	if len(flat) == 0 || len(flat)%2 != 0 {
		return nil, common.Configurationf("anchor list must hold width/height pairs, got %d values", len(flat))
	}
	pairs := len(flat) / 2
	if pairs%strides != 0 {
		return nil, common.Configurationf("%d anchor pairs cannot be split across %d strides", pairs, strides)
	}

	perStride := pairs / strides
	sets := make([]AnchorSet, strides)
	for s := range sets {
		set := make(AnchorSet, perStride)
		for q := range set {
			off := (s*perStride + q) * 2
			set[q] = Anchor{Width: flat[off], Height: flat[off+1]}
		}
		sets[s] = set
	}
	return sets, nil
}
