package throttle

import (
	"context"
	"encoding/json"
	"time"

	"tgbotkit"
	"tgbotkit/types"
)

// Do runs call under w's admission control for chat: it blocks until w
// admits the send, issues it, and — if retry-on-429 is enabled and call
// returns a RetryAfter error — reports the freeze to w and retries once the
// freeze lifts, repeating until call succeeds or returns a non-RetryAfter
// error. This generalizes the teacher's Throttler.Do retry loop (§4.5,
// grounded on internal/infra/throttle/throttler.go's wait-then-retry shape)
// to the worker's queue-based admission instead of a token bucket. call's
// signature matches tgbotkit.Executor.Call, since this is always used at the
// Executor-decoration boundary (see adaptors.Throttle).
func Do(ctx context.Context, w *Worker, chat types.ChatKey, call func(ctx context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	for {
		retryEnabled, report, err := w.Acquire(ctx, chat)
		if err != nil {
			return nil, err
		}

		result, callErr := call(ctx)
		if callErr == nil {
			return result, nil
		}

		wait, isRetryAfter := tgbotkit.AsRetryAfter(callErr)
		if !isRetryAfter || !retryEnabled {
			return nil, callErr
		}

		until := time.Now().Add(wait)
		if report != nil {
			report(until)
		}

		if err := sleepUntil(ctx, until); err != nil {
			return nil, err
		}
	}
}

func sleepUntil(ctx context.Context, until time.Time) error {
	d := time.Until(until)
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
