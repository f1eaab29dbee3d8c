// Package adaptors wraps a tgbotkit.Bot's Executor to add caching,
// default-parameter injection, throttling, and call tracing, without
// changing the Bot's method set — every function here returns a Bot, just
// with its Executor decorated. This is the Go analogue of the teacher's
// mutex-guarded singleton (internal/infra/telegram/cache.peerCacheInstance)
// generalized into a reusable decorator shape, since Go has no blanket impl
// to let one adaptor type automatically inherit a facade's full method set.
package adaptors

import (
	"context"
	"encoding/json"
	"sync"

	"tgbotkit"
	"tgbotkit/methods"
)

// cachingExecutor memoizes the result of a single GetMe call: the first
// caller's result is shared with every later caller and never refreshed;
// errors are never cached, matching spec.md §4.4.1's contract exactly.
type cachingExecutor struct {
	inner tgbotkit.Executor

	mu     sync.Mutex
	ready  bool
	result json.RawMessage
}

// Cache returns a Bot whose GetMe calls are memoized for the lifetime of the
// returned Bot (the cache cell is not shared across separate Cache calls).
func Cache(b tgbotkit.Bot) tgbotkit.Bot {
	return b.WithExecutor(&cachingExecutor{inner: b.Executor()})
}

func (c *cachingExecutor) Call(ctx context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	if _, isGetMe := p.(methods.GetMe); !isGetMe {
		return c.inner.Call(ctx, p)
	}

	c.mu.Lock()
	if c.ready {
		result := c.result
		c.mu.Unlock()
		return result, nil
	}
	c.mu.Unlock()

	// Concurrent racers before the first success all call through; only the
	// first success is stored. No singleflight dedup of the concurrent
	// in-flight calls themselves — see DESIGN.md.
	result, err := c.inner.Call(ctx, p)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.ready {
		c.result = result
		c.ready = true
	}
	result = c.result
	c.mu.Unlock()

	return result, nil
}
