// Package inference - Inference engine interface and implementations.
package inference

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/inference/providers"
)

// ErrInference is returned (wrapped) when an engine fails to produce outputs.
var ErrInference = common.ErrInference

// Engine defines the interface for ML inference engines.
//
// Run takes a (1, 3, H, W) float32 tensor with values in [0, 1] and returns one
// raw output tensor per detection head, in head order.
type Engine interface {
	Run(ctx context.Context, input *tensor.Dense) ([]*tensor.Dense, error)
	Close() error
}

// EngineBuilder assembles an ONNX Runtime engine with a fluent API.
type EngineBuilder struct {
	provider providers.Config
	args     providers.NewSessionArgs
	logger   logrus.FieldLogger
	err      error
}

// NewEngineBuilder creates a new engine builder using the default CPU provider.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{provider: providers.DefaultConfig()}
}

// WithProvider sets the execution provider configuration.
//
// Arguments:
//   - cfg: The provider configuration.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func (b *EngineBuilder) WithProvider(cfg providers.Config) *EngineBuilder {
	if b.HasError() {
		return b
	}
	if err := cfg.Validate(); err != nil {
		b.err = err
		return b
	}
	b.provider = cfg
	return b
}

// WithModel sets the model file and node names.
//
// Arguments:
//   - path: The ONNX model path.
//   - input: The image input node name.
//   - outputs: The output node names, one per detection head.
//
// Returns:
//   - *EngineBuilder: The engine builder.
func (b *EngineBuilder) WithModel(path, input string, outputs []string) *EngineBuilder {
	if b.HasError() {
		return b
	}
	if path == "" {
		b.err = common.Configurationf("model path is required")
		return b
	}
	if input == "" || len(outputs) == 0 {
		b.err = common.Configurationf("model %s: input and output names are required", path)
		return b
	}
	b.args = providers.NewSessionArgs{ModelPath: path, InputName: input, OutputNames: outputs}
	return b
}

// WithLogger sets the logger passed to the session.
func (b *EngineBuilder) WithLogger(logger logrus.FieldLogger) *EngineBuilder {
	b.logger = logger
	return b
}

// HasError checks if the engine builder has errors.
//
// Returns:
//   - bool: True if there are errors, false otherwise.
func (b *EngineBuilder) HasError() bool {
	return b.err != nil
}

// Build builds the engine.
//
// Returns:
//   - Engine: The engine.
//   - error: The first error recorded by the builder, or the session creation error.
func (b *EngineBuilder) Build() (Engine, error) {
	if b.HasError() {
		return nil, b.err
	}
	if b.args.ModelPath == "" {
		return nil, common.Configurationf("model not configured")
	}

	session, err := providers.NewSession(b.provider, b.args, b.logger)
	if err != nil {
		return nil, err
	}
	return session, nil
}
