// Package logging - Structured logger construction.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nvr-ai/go-yolo/common"
)

// Fields is an alias so callers need not import logrus for simple field maps.
type Fields = logrus.Fields

// Config configures the process logger.
type Config struct {
	// Level is a logrus level name (trace, debug, info, warn, error).
	Level string `json:"level" yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	// NoColors disables ANSI colours in console output.
	NoColors bool `json:"no_colors" yaml:"no_colors"`
	// Caller adds the calling file, line and function to every entry.
	Caller bool `json:"caller" yaml:"caller"`
	// File, when set, additionally writes logs to a size-rotated file.
	File string `json:"file" yaml:"file"`
	// MaxSizeMB is the rotation size of File in megabytes.
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `json:"max_backups" yaml:"max_backups" validate:"gte=0"`
	// MaxAgeDays is the retention of rotated files in days.
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days" validate:"gte=0"`
}

// DefaultConfig logs info and above to stderr only.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 7,
	}
}

// New builds a logger from cfg. Console output goes to stderr; when cfg.File is
// set the same entries are also written to a rotating file.
//
// Arguments:
//   - cfg: The logger configuration.
//
// Returns:
//   - *logrus.Logger: The configured logger.
//   - error: A configuration error if the level name cannot be parsed.
func New(cfg Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, common.Configurationf("invalid log level %q", cfg.Level)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:        cfg.NoColors,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
		},
	})
	logger.SetReportCaller(cfg.Caller)

	writers := []io.Writer{os.Stderr}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    cfg.MaxSizeMB,
			MaxAge:     cfg.MaxAgeDays,
			MaxBackups: cfg.MaxBackups,
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))

	return logger, nil
}

// Discard returns a logger that drops every entry. Library types use it when
// no logger is supplied.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}
