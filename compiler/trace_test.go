package compiler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogTrace_LogStepWritesConstructAndType(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := NewSlogTrace(logger)

	tr.LogStep(context.Background(), "pqlast.Projection", "table users")

	out := buf.String()
	assert.Contains(t, out, "compile step")
	assert.Contains(t, out, "pqlast.Projection")
}

func TestSlogTrace_LogErrorWritesErrorText(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := NewSlogTrace(logger)

	tr.LogError(context.Background(), errors.New("boom"))

	assert.Contains(t, buf.String(), "boom")
}

func TestNewSlogTrace_NilLoggerFallsBackToDefault(t *testing.T) {
	tr := NewSlogTrace(nil)
	assert.NotNil(t, tr.Logger)
}

func TestNopTrace_DiscardsEverything(t *testing.T) {
	var tr Trace = NopTrace{}
	assert.NotPanics(t, func() {
		tr.LogStep(context.Background(), "x", "y")
		tr.LogError(context.Background(), errors.New("ignored"))
	})
}
