package adaptors

import (
	"context"
	"encoding/json"

	"tgbotkit"
	"tgbotkit/throttle"
)

// throttlingExecutor gates chat-scoped calls through a throttle.Worker
// before forwarding them, and reports RetryAfter freezes back to the worker
// per spec.md §4.5. Payloads that don't implement tgbotkit.ChatScoped (getMe,
// getUpdates, ...) bypass admission control entirely.
type throttlingExecutor struct {
	inner  tgbotkit.Executor
	worker *throttle.Worker
}

// Throttle returns a Bot whose chat-scoped calls are admitted by worker.
// worker must already be running (see throttle.Worker.Run) before any call
// goes through the returned Bot.
func Throttle(b tgbotkit.Bot, worker *throttle.Worker) tgbotkit.Bot {
	return b.WithExecutor(&throttlingExecutor{inner: b.Executor(), worker: worker})
}

func (e *throttlingExecutor) Call(ctx context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	scoped, ok := p.(tgbotkit.ChatScoped)
	if !ok {
		return e.inner.Call(ctx, p)
	}

	result, err := throttle.Do(ctx, e.worker, scoped.ChatKey(), func(ctx context.Context) (json.RawMessage, error) {
		return e.inner.Call(ctx, p)
	})
	return result, err
}
