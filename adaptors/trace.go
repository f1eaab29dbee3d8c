package adaptors

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"tgbotkit"
	"tgbotkit/tglog"
)

// traceExecutor logs every call's method name, duration, and outcome at
// debug level, matching the teacher's structured-logging idiom (tglog
// wraps zap throughout the pack) rather than introducing a separate tracing
// dependency for what the spec calls a "log every call" concern.
type traceExecutor struct {
	inner tgbotkit.Executor
}

// Trace returns a Bot that logs each call via tglog.
func Trace(b tgbotkit.Bot) tgbotkit.Bot {
	return b.WithExecutor(&traceExecutor{inner: b.Executor()})
}

func (e *traceExecutor) Call(ctx context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	start := time.Now()
	result, err := e.inner.Call(ctx, p)
	elapsed := time.Since(start)

	if err != nil {
		tglog.Debug("bot api call failed",
			zap.String("method", p.Method()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return result, err
	}

	tglog.Debug("bot api call",
		zap.String("method", p.Method()),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}
