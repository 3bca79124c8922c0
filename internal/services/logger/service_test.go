package logger_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Nazarious-ucu/weather-dashboard/internal/services/logger"
)

func TestRoundTripper_LogsAndPreservesBody(t *testing.T) {
	body := strings.Repeat("x", 2048)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	core, logs := observer.New(zap.InfoLevel)
	client := &http.Client{Transport: logger.NewRoundTripper(zap.New(core))}

	resp, err := client.Get(srv.URL + "/v1/forecast?latitude=1")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))

	entries := logs.FilterMessage("HTTP request completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status_code"])
	assert.Equal(t, int64(len(body)), fields["body_size"])
	assert.Len(t, fields["body_snippet"], 512)
}

func TestRoundTripper_LogsTransportError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	client := &http.Client{Transport: logger.NewRoundTripper(zap.New(core))}

	_, err := client.Get("http://127.0.0.1:1/unreachable")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("HTTP request failed").Len())
}
