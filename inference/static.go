package inference

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-yolo/common"
)

// StaticEngine is an Engine that returns preset outputs. It replays recorded
// network outputs and stands in for a real runtime in tests.
type StaticEngine struct {
	// Outputs are cloned and returned by every Run.
	Outputs []*tensor.Dense
	// Err, when set, is returned (as an inference failure) instead of Outputs.
	Err error

	mu     sync.Mutex
	calls  int
	inputs [][]int
	closed bool
}

// NewStaticEngine returns an engine replaying outputs.
func NewStaticEngine(outputs ...*tensor.Dense) *StaticEngine {
	return &StaticEngine{Outputs: outputs}
}

// Run returns clones of the preset outputs.
func (e *StaticEngine) Run(ctx context.Context, input *tensor.Dense) ([]*tensor.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Inference(err, "run cancelled")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, common.Inference(errors.New("engine is closed"), "run")
	}
	e.calls++
	if input != nil {
		e.inputs = append(e.inputs, append([]int(nil), input.Shape()...))
	}
	if e.Err != nil {
		return nil, common.Inference(e.Err, "static engine")
	}

	out := make([]*tensor.Dense, len(e.Outputs))
	for i, o := range e.Outputs {
		out[i] = o.Clone().(*tensor.Dense)
	}
	return out, nil
}

// Calls returns the number of Run invocations.
func (e *StaticEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// InputShapes returns the shapes of the inputs passed to Run, in call order.
func (e *StaticEngine) InputShapes() [][]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]int(nil), e.inputs...)
}

// Close marks the engine closed; later runs fail.
func (e *StaticEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
