package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

func TestWithCtx_FallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))

	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := logger.InjectLogger(context.Background(), reqLog)

	logger.WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debug, warn bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(h).With("component", "test")

	log.Info("only debug sink")
	log.Warn("both sinks")

	assert.Contains(t, debug.String(), "only debug sink")
	assert.Contains(t, debug.String(), "both sinks")
	assert.NotContains(t, warn.String(), "only debug sink")
	assert.Contains(t, warn.String(), "component=test")
}

func TestNew_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, "production").Info("ready", "port", 8080)
	assert.Contains(t, buf.String(), `"msg":"ready"`)
}
