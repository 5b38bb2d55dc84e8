package inference

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/inference/providers"
)

func TestEngineBuilder_Errors(t *testing.T) {
	_, err := NewEngineBuilder().Build()
	assert.True(t, errors.Is(err, common.ErrConfiguration), "no model")

	b := NewEngineBuilder().WithProvider(providers.Config{Backend: "tpu"})
	assert.True(t, b.HasError())
	_, err = b.WithModel("yolov7.onnx", "in0", []string{"out0"}).Build()
	assert.True(t, errors.Is(err, common.ErrConfiguration), "first error is kept")

	_, err = NewEngineBuilder().WithModel("", "in0", []string{"out0"}).Build()
	assert.True(t, errors.Is(err, common.ErrConfiguration))

	_, err = NewEngineBuilder().WithModel("yolov7.onnx", "in0", nil).Build()
	assert.True(t, errors.Is(err, common.ErrConfiguration))

}

func TestStaticEngine(t *testing.T) {
	out := tensor.New(tensor.WithShape(1, 2, 2), tensor.WithBacking([]float32{1, 2, 3, 4}))
	e := NewStaticEngine(out)

	input := tensor.New(tensor.WithShape(1, 3, 4, 4), tensor.WithBacking(make([]float32, 48)))
	got, err := e.Run(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []float32{1, 2, 3, 4}, got[0].Float32s())

	// Outputs are cloned per run.
	got[0].Float32s()[0] = 42
	again, err := e.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, float32(1), again[0].Float32s()[0])

	assert.Equal(t, 2, e.Calls())
	assert.Equal(t, [][]int{{1, 3, 4, 4}, {1, 3, 4, 4}}, e.InputShapes())

	require.NoError(t, e.Close())
	_, err = e.Run(context.Background(), input)
	assert.True(t, errors.Is(err, ErrInference))
}

func TestStaticEngine_Failure(t *testing.T) {
	cause := errors.New("malformed network")
	e := &StaticEngine{Err: cause}

	_, err := e.Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInference))
	assert.Equal(t, cause, errors.Cause(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewStaticEngine().Run(ctx, nil)
	assert.True(t, errors.Is(err, ErrInference))
}

func TestSessionImplementsEngine(t *testing.T) {
	var _ Engine = (*providers.Session)(nil)
	var _ Engine = (*StaticEngine)(nil)
}
