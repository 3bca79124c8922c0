package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-dashboard/pkg/logger"
)

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := logger.NewLogger(path, "weather_dashboard_test")
	require.NoError(t, err)

	l.Info().Str("k", "v").Msg("hello")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"service":"weather_dashboard_test"`)
	assert.Contains(t, string(content), `"message":"hello"`)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "http.log")

	l, err := logger.NewFileLogger(path)
	require.NoError(t, err)

	l.Info("HTTP request completed")
	require.NoError(t, l.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "HTTP request completed")

	nop, err := logger.NewFileLogger("")
	require.NoError(t, err)
	assert.NotNil(t, nop)
}
