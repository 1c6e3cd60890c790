package compiler

import (
	"context"
	"log/slog"
)

// Trace is the compiler's structured logging hook, grounded on the
// teacher's tsqlruntime/splogger.go SPLogger family — trimmed to the two
// variants a synchronous, single-call compilation actually exercises.
// There is no buffered/multi/file sink here: the compiler never owns a
// long-lived process to batch-flush logs from the way a stored-procedure
// runtime does.
type Trace interface {
	// LogStep records a single Evaluate dispatch, gated by
	// Config.Debug.
	LogStep(ctx context.Context, construct string, typ string)

	// LogError records a compiler error before it propagates to the
	// caller.
	LogError(ctx context.Context, err error)
}

// SlogTrace logs via log/slog.
type SlogTrace struct {
	Logger *slog.Logger
}

// NewSlogTrace builds a SlogTrace; a nil logger falls back to slog.Default().
func NewSlogTrace(logger *slog.Logger) *SlogTrace {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTrace{Logger: logger}
}

func (t *SlogTrace) LogStep(ctx context.Context, construct string, typ string) {
	t.Logger.DebugContext(ctx, "compile step", slog.String("construct", construct), slog.String("type", typ))
}

func (t *SlogTrace) LogError(ctx context.Context, err error) {
	t.Logger.ErrorContext(ctx, "compile error", slog.String("error", err.Error()))
}

// NopTrace discards everything; NewState uses it when given a nil Trace.
type NopTrace struct{}

func (NopTrace) LogStep(context.Context, string, string) {}
func (NopTrace) LogError(context.Context, error)         {}
