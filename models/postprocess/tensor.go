package postprocess

import (
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-yolo/common"
)

// FeatureTensor is the raw output of one detection head, laid out as
// (channels, grid_height, grid_width) with
//
//	channel = anchor*(5+num_classes) + {0:dx, 1:dy, 2:dw, 3:dh, 4:objectness, 5..:class logits}
//
// It is read-only; decoding never mutates or retains it.
type FeatureTensor struct {
	dense    *tensor.Dense
	data     []float32
	channels int
	height   int
	width    int
}

// NewFeatureTensor wraps a contiguous float32 buffer in CHW order.
func NewFeatureTensor(data []float32, channels, height, width int) (*FeatureTensor, error) {
	if channels <= 0 || height <= 0 || width <= 0 {
		return nil, common.Configurationf("invalid feature shape (%d, %d, %d)", channels, height, width)
	}
	if len(data) != channels*height*width {
		return nil, common.Configurationf("feature buffer has %d values, shape (%d, %d, %d) needs %d",
			len(data), channels, height, width, channels*height*width)
	}
	return &FeatureTensor{
		dense:    tensor.New(tensor.WithShape(channels, height, width), tensor.WithBacking(data)),
		data:     data,
		channels: channels,
		height:   height,
		width:    width,
	}, nil
}

// FeatureTensorFromDense wraps a dense tensor produced by the inference engine.
// Both (C, H, W) and (1, C, H, W) shapes are accepted.
func FeatureTensorFromDense(d *tensor.Dense) (*FeatureTensor, error) {
	if d == nil {
		return nil, common.Configurationf("feature tensor is nil")
	}
	if d.Dtype() != tensor.Float32 {
		return nil, common.Configurationf("feature tensor must be float32, got %v", d.Dtype())
	}

	shape := d.Shape()
	switch {
	case len(shape) == 3:
	case len(shape) == 4 && shape[0] == 1:
		shape = shape[1:]
	default:
		return nil, common.Configurationf("feature tensor must be (C, H, W) or (1, C, H, W), got %v", shape)
	}

	if d.RequiresIterator() {
		d = d.Materialize().(*tensor.Dense)
	}
	return NewFeatureTensor(d.Float32s(), shape[0], shape[1], shape[2])
}

// Channels returns the channel count.
func (f *FeatureTensor) Channels() int { return f.channels }

// Height returns the grid height.
func (f *FeatureTensor) Height() int { return f.height }

// Width returns the grid width.
func (f *FeatureTensor) Width() int { return f.width }

// At returns the value at channel c, row i, column j.
func (f *FeatureTensor) At(c, i, j int) float32 {
	return f.data[(c*f.height+i)*f.width+j]
}

// Dense returns the underlying tensor.
func (f *FeatureTensor) Dense() *tensor.Dense { return f.dense }
