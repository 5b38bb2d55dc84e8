package postprocess

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/images"
)

// DecodeConfig holds the per-stride decoding parameters.
type DecodeConfig struct {
	// Stride is the downsampling factor of the detection head.
	Stride int
	// NumClasses is the number of class logits per anchor.
	NumClasses int
	// ProbThreshold is the minimum confidence, in (0, 1), required to emit a proposal.
	ProbThreshold float32
	// Anchors are the prior box shapes of this head.
	Anchors AnchorSet
}

// Validate checks the configuration against the feature tensor it will decode.
func (c DecodeConfig) Validate(feat *FeatureTensor) error {
	if feat == nil {
		return common.Configurationf("stride %d: feature tensor is nil", c.Stride)
	}
	if c.Stride <= 0 {
		return common.Configurationf("stride must be positive, got %d", c.Stride)
	}
	if c.NumClasses <= 0 {
		return common.Configurationf("num classes must be positive, got %d", c.NumClasses)
	}
	if !(c.ProbThreshold > 0 && c.ProbThreshold < 1) {
		return common.Configurationf("prob threshold must be in (0, 1), got %v", c.ProbThreshold)
	}
	if len(c.Anchors) == 0 {
		return common.Configurationf("stride %d: no anchors configured", c.Stride)
	}
	if want := len(c.Anchors) * (5 + c.NumClasses); feat.Channels() != want {
		return common.Configurationf("stride %d: tensor has %d channels, %d anchors x (5 + %d classes) needs %d",
			c.Stride, feat.Channels(), len(c.Anchors), c.NumClasses, want)
	}
	return nil
}

// Sigmoid is the logistic function.
func Sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// DecodeProposals decodes one stride's raw feature tensor into proposals in padded
// image coordinates.
//
// For every anchor slot and grid cell the class score is the maximum class logit
// (the first index wins ties). The confidence sigmoid(objectness)*sigmoid(score)
// is compared against the threshold before any box geometry is computed.
//
// Arguments:
//   - feat: The stride's feature tensor. It is only read.
//   - cfg: The decoding parameters for this stride.
//
// Returns:
//   - []Detection: The proposals, in (anchor, row, column) scan order.
//   - error: A configuration error if cfg does not match the tensor.
func DecodeProposals(feat *FeatureTensor, cfg DecodeConfig) ([]Detection, error) {
	if err := cfg.Validate(feat); err != nil {
		return nil, err
	}

	stride := float32(cfg.Stride)
	perAnchor := 5 + cfg.NumClasses
	var proposals []Detection

	for q, anchor := range cfg.Anchors {
		base := q * perAnchor

		for i := 0; i < feat.Height(); i++ {
			for j := 0; j < feat.Width(); j++ {
				classIndex := 0
				classScore := math32.Inf(-1)
				for k := 0; k < cfg.NumClasses; k++ {
					score := feat.At(base+5+k, i, j)
					if score > classScore {
						classIndex = k
						classScore = score
					}
				}

				confidence := Sigmoid(feat.At(base+4, i, j)) * Sigmoid(classScore)
				if !(confidence >= cfg.ProbThreshold) {
					continue
				}

				dx := Sigmoid(feat.At(base+0, i, j))
				dy := Sigmoid(feat.At(base+1, i, j))
				dw := Sigmoid(feat.At(base+2, i, j))
				dh := Sigmoid(feat.At(base+3, i, j))

				cx := (dx*2 - 0.5 + float32(j)) * stride
				cy := (dy*2 - 0.5 + float32(i)) * stride

				w := (dw * 2) * (dw * 2) * anchor.Width
				h := (dh * 2) * (dh * 2) * anchor.Height

				proposals = append(proposals, Detection{
					Box: images.Rect{
						X:      cx - w*0.5,
						Y:      cy - h*0.5,
						Width:  w,
						Height: h,
					},
					Label:      classIndex,
					Confidence: confidence,
				})
			}
		}
	}

	return proposals, nil
}
