package providers

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/logging"
)

var (
	envOnce sync.Once
	envErr  error
)

// initEnvironment loads the shared library and prepares the ONNX Runtime
// environment. It runs once per process; later calls return the first result.
func initEnvironment(libPath string) error {
	envOnce.Do(func() {
		if _, err := os.Stat(libPath); err != nil {
			envErr = common.Configurationf("ONNX Runtime library not found at %s: %v", libPath, err)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			envErr = errors.Wrap(err, "error initializing ORT environment")
		}
	})
	return envErr
}

// NewSessionArgs represents the arguments for creating a new ONNX session.
type NewSessionArgs struct {
	// The path to the ONNX model file.
	ModelPath string
	// The name of the image input node.
	InputName string
	// The names of the output nodes, one per detection stride.
	OutputNames []string
}

// Session is a dynamic-shape ONNX Runtime session.
//
// Input and output tensors are allocated per run, so letterboxed inputs of any
// padded size can be fed to the same session. Runs are independent and may be
// issued concurrently.
type Session struct {
	session     *ort.DynamicAdvancedSession
	inputName   string
	outputNames []string
	backend     ProviderBackend
	logger      logrus.FieldLogger
}

// NewSession creates a new ONNX Runtime session.
//
// Order of operations:
//  1. Library path check and environment setup (once per process).
//  2. Session options: thread counts and graph optimization level.
//  3. Execution provider registration.
//  4. Session creation: loads the model and resolves the node names.
//
// Arguments:
//   - cfg: The provider configuration.
//   - args: The model path and node names.
//   - logger: Receives session lifecycle logs. Nil discards them.
//
// Returns:
//   - *Session: The runnable session.
//   - error: A configuration error for invalid arguments, or the ONNX Runtime failure.
func NewSession(cfg Config, args NewSessionArgs, logger logrus.FieldLogger) (*Session, error) {
	logger = logging.OrDiscard(logger)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if args.ModelPath == "" {
		return nil, common.Configurationf("model path is required")
	}
	if args.InputName == "" || len(args.OutputNames) == 0 {
		return nil, common.Configurationf("input and output node names are required")
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	libPath := GetSharedLibPath(cfg.LibraryPath)
	if err := initEnvironment(libPath); err != nil {
		return nil, err
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "error creating ORT session options")
	}
	defer options.Destroy()

	if err := options.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
		return nil, errors.Wrap(err, "error setting intra-op threads")
	}
	if err := options.SetInterOpNumThreads(cfg.InterOpThreads); err != nil {
		return nil, errors.Wrap(err, "error setting inter-op threads")
	}
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended); err != nil {
		return nil, errors.Wrap(err, "error setting graph optimization level")
	}

	if err := provider.Append(options); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(args.ModelPath,
		[]string{args.InputName}, args.OutputNames, options)
	if err != nil {
		return nil, errors.Wrap(err, "error creating ORT session")
	}

	logger.WithFields(logrus.Fields{
		"model":   args.ModelPath,
		"backend": provider.Backend(),
		"library": libPath,
		"outputs": args.OutputNames,
	}).Info("onnx runtime session created")

	return &Session{
		session:     session,
		inputName:   args.InputName,
		outputNames: append([]string(nil), args.OutputNames...),
		backend:     provider.Backend(),
		logger:      logger,
	}, nil
}

// Backend returns the execution provider the session runs on.
func (s *Session) Backend() ProviderBackend { return s.backend }

// Run feeds one (1, 3, H, W) float32 tensor through the network and returns one
// dense tensor per output node, in OutputNames order.
//
// Failures of the runtime are reported as inference errors.
func (s *Session) Run(ctx context.Context, input *tensor.Dense) ([]*tensor.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Inference(err, "run cancelled")
	}
	if s.session == nil {
		return nil, common.Inference(errors.New("session is closed"), "run")
	}
	if input == nil || input.Dtype() != tensor.Float32 {
		return nil, common.Configurationf("input must be a float32 tensor")
	}

	dims := input.Shape()
	shape := make([]int64, len(dims))
	for i, d := range dims {
		shape[i] = int64(d)
	}

	in, err := ort.NewTensor(ort.NewShape(shape...), input.Float32s())
	if err != nil {
		return nil, common.Inference(err, "creating input tensor")
	}
	defer in.Destroy()

	outputs := make([]ort.Value, len(s.outputNames))
	if err := s.session.Run([]ort.Value{in}, outputs); err != nil {
		return nil, common.Inference(err, "running session")
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				o.Destroy()
			}
		}
	}()

	result := make([]*tensor.Dense, len(outputs))
	for i, o := range outputs {
		t, ok := o.(*ort.Tensor[float32])
		if !ok {
			return nil, common.Inference(errors.Errorf("unexpected output type %T", o), s.outputNames[i])
		}
		outShape := t.GetShape()
		intShape := make([]int, len(outShape))
		for k, d := range outShape {
			intShape[k] = int(d)
		}
		data := append([]float32(nil), t.GetData()...)
		result[i] = tensor.New(tensor.WithShape(intShape...), tensor.WithBacking(data))
	}

	return result, nil
}

// Close releases the resources associated with the Session.
func (s *Session) Close() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	if err != nil {
		return errors.Wrap(err, "error destroying ORT session")
	}
	return nil
}
