package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gottl/internal/config"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New(config.LogConfig{Level: "info", Format: config.LogFormatText}, &buf)
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("removing expired key", "key", "A")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `msg="removing expired key"`)
	assert.Contains(t, out, "key=A")
	assert.Contains(t, out, "component=gottl")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New(config.LogConfig{Level: "debug", Format: config.LogFormatJSON}, &buf)
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("sweep started")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "sweep started", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gottl.log")
	logger, cleanup, err := New(config.LogConfig{
		Level:      "info",
		Format:     config.LogFormatText,
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, nil)
	require.NoError(t, err)

	logger.Info("sweep finished", "removed", 3)
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "removed=3")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
