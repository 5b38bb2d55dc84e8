package logging

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-yolo/common"
)

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.NoColors = true

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.WithFields(Fields{"stride": 8}).Info("decoded")
	assert.Contains(t, buf.String(), "decoded")
	assert.Contains(t, buf.String(), "stride:8")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	assert.Contains(t, err.Error(), "loud")
}

func TestNew_RotatingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = t.TempDir() + "/yolo.log"

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger.Out)
}

func TestOrDiscard(t *testing.T) {
	l := OrDiscard(nil)
	require.NotNil(t, l)
	l.Info("dropped")

	own := logrus.New()
	assert.Same(t, own, OrDiscard(own))
}
