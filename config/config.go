// Package config - Application configuration from YAML, .env and the environment.
package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-yolo/common"
	"github.com/nvr-ai/go-yolo/inference/providers"
	"github.com/nvr-ai/go-yolo/logging"
	"github.com/nvr-ai/go-yolo/models/yolov7"
)

// Environment variables that override file values.
const (
	EnvModelPath     = "YOLO_MODEL_PATH"
	EnvProbThreshold = "YOLO_PROB_THRESHOLD"
	EnvNMSThreshold  = "YOLO_NMS_THRESHOLD"
	EnvLibraryPath   = "YOLO_ORT_LIB"
	EnvBackend       = "YOLO_BACKEND"
	EnvLogLevel      = "YOLO_LOG_LEVEL"
)

// OutputConfig controls what the CLI produces for each image.
type OutputConfig struct {
	// Dir is where result files are written.
	Dir string `json:"dir" yaml:"dir"`
	// Write enables the result file.
	Write bool `json:"write" yaml:"write"`
	// Show opens a window with the drawn detections.
	Show bool `json:"show" yaml:"show"`
}

// Config is the complete application configuration.
type Config struct {
	Model    yolov7.Options   `json:"model" yaml:"model"`
	Provider providers.Config `json:"provider" yaml:"provider"`
	Output   OutputConfig     `json:"output" yaml:"output"`
	Log      logging.Config   `json:"log" yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Model:    yolov7.DefaultOptions(),
		Provider: providers.DefaultConfig(),
		Output:   OutputConfig{Dir: ".", Write: true},
		Log:      logging.DefaultConfig(),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then a .env file in the working directory (if present),
// then environment overrides. The result is validated.
//
// Arguments:
//   - path: The YAML file, or "" for defaults only.
//
// Returns:
//   - *Config: The validated configuration.
//   - error: A configuration error for unreadable, malformed or invalid input.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, common.Configurationf("reading %s: %v", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, common.Configurationf("parsing %s: %v", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, common.Configurationf("loading .env: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvModelPath); v != "" {
		c.Model.ModelPath = v
	}
	if v := os.Getenv(EnvLibraryPath); v != "" {
		c.Provider.LibraryPath = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Provider.Backend = providers.ProviderBackend(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if err := envFloat(EnvProbThreshold, &c.Model.ProbThreshold); err != nil {
		return err
	}
	return envFloat(EnvNMSThreshold, &c.Model.NMSThreshold)
}

func envFloat(name string, dst *float32) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return common.Configurationf("%s=%q is not a number", name, v)
	}
	*dst = float32(f)
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if err := c.Provider.Validate(); err != nil {
		return err
	}
	if err := validator.New().Struct(c.Log); err != nil {
		return common.Configurationf("invalid log config: %v", err)
	}
	return nil
}
