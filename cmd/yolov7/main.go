// Command yolov7 detects objects in one image with a YOLOv7 ONNX model.
//
// Usage:
//
//	yolov7 [flags] imagepath
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-yolo/config"
	"github.com/nvr-ai/go-yolo/inference"
	"github.com/nvr-ai/go-yolo/inference/providers"
	"github.com/nvr-ai/go-yolo/logging"
	"github.com/nvr-ai/go-yolo/models"
	"github.com/nvr-ai/go-yolo/models/yolov7"
	"github.com/nvr-ai/go-yolo/render"
	"github.com/nvr-ai/go-yolo/report"
)

type flags struct {
	configPath string
	modelPath  string
	libPath    string
	backend    string
	outputDir  string
	annotated  string
	prob       float64
	nms        float64
	write      bool
	show       bool
	agnostic   bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to a YAML configuration file")
	flag.StringVar(&f.modelPath, "model", "", "Path to the YOLOv7 ONNX model")
	flag.StringVar(&f.libPath, "lib", "", "Path to the ONNX Runtime shared library")
	flag.StringVar(&f.backend, "backend", "", "Execution provider: cpu, cuda, coreml or openvino")
	flag.StringVar(&f.outputDir, "output", "", "Directory for the result file")
	flag.StringVar(&f.annotated, "annotated", "", "Write the image with drawn detections to this path")
	flag.Float64Var(&f.prob, "prob", 0, "Confidence threshold")
	flag.Float64Var(&f.nms, "nms", 0, "NMS IoU threshold")
	flag.BoolVar(&f.write, "write", true, "Write the result file")
	flag.BoolVar(&f.show, "show", false, "Show the detections in a window")
	flag.BoolVar(&f.agnostic, "agnostic", false, "Suppress overlapping boxes across classes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] imagepath\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, f, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "yolov7: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// apply copies explicitly set flags over the loaded configuration.
func (f flags) apply(cfg *config.Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "model":
			cfg.Model.ModelPath = f.modelPath
		case "lib":
			cfg.Provider.LibraryPath = f.libPath
		case "backend":
			cfg.Provider.Backend = providers.ProviderBackend(f.backend)
		case "output":
			cfg.Output.Dir = f.outputDir
		case "prob":
			cfg.Model.ProbThreshold = float32(f.prob)
		case "nms":
			cfg.Model.NMSThreshold = float32(f.nms)
		case "write":
			cfg.Output.Write = f.write
		case "show":
			cfg.Output.Show = f.show
		case "agnostic":
			cfg.Model.Agnostic = f.agnostic
		}
	})
}

func run(ctx context.Context, f flags, imagePath string) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	mat := gocv.IMRead(imagePath, gocv.IMReadColor)
	if mat.Empty() {
		return errors.Errorf("reading image %s failed", imagePath)
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return errors.Wrapf(err, "converting %s", imagePath)
	}

	detector, err := yolov7.NewModel(cfg.Model, logger)
	if err != nil {
		return err
	}

	engine, err := inference.NewEngineBuilder().
		WithProvider(cfg.Provider).
		WithModel(cfg.Model.ModelPath, cfg.Model.InputName, cfg.Model.OutputNames).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}
	defer engine.Close()

	logger.WithFields(logrus.Fields{
		"image": imagePath,
		"size":  fmt.Sprintf("%dx%d", mat.Cols(), mat.Rows()),
	}).Info("processing image")

	dets, _, err := detector.Detect(ctx, img, engine)
	if err != nil {
		return err
	}

	for _, d := range dets {
		logger.WithField("class", models.ClassName(d.Label)).Info(d.String())
	}

	if cfg.Output.Write {
		path, err := report.WriteFile(cfg.Output.Dir, imagePath, dets)
		if err != nil {
			return err
		}
		logger.WithField("path", path).Info("inference results saved")
	}

	if cfg.Output.Show || f.annotated != "" {
		render.Draw(&mat, dets, models.ClassName)
	}

	if f.annotated != "" {
		if !gocv.IMWrite(f.annotated, mat) {
			return errors.Errorf("writing %s failed", f.annotated)
		}
		logger.WithField("path", f.annotated).Info("annotated image saved")
	}

	if cfg.Output.Show {
		window := gocv.NewWindow("image")
		defer window.Close()
		window.IMShow(mat)
		window.WaitKey(0)
	}

	return nil
}
