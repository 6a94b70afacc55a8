package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewHandler_JSONErrorHasStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "INFO", "json"))

	logger.Error("boom", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Contains(t, rec, "stacktrace")
	assert.Contains(t, rec, "source")
}

func TestNewHandler_InfoHasNoStacktrace(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, "INFO", "json")).Info("hello")

	assert.NotContains(t, buf.String(), "stacktrace")
}

func TestNewHandler_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "WARN", "json"))

	logger.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, "INFO", "TEXT")).Info("hello", "k", "v")

	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=hello"), out)
	assert.Contains(t, out, "k=v")
}

func TestNewHandler_RequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "INFO", "json")).With("svc", "api")

	ctx := WithRequestID(context.Background(), "req-123")
	logger.InfoContext(ctx, "handled")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-123", rec["request_id"])
	assert.Equal(t, "api", rec["svc"])
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
