package adaptors_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"tgbotkit"
	"tgbotkit/adaptors"
	"tgbotkit/methods"
)

// countingExecutor counts calls per payload method and can be told to fail
// its next N calls, to exercise the cache adaptor's "never cache an error"
// contract.
type countingExecutor struct {
	calls     int32
	failNext  int32
	getMeBody json.RawMessage
}

func (e *countingExecutor) Call(ctx context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	atomic.AddInt32(&e.calls, 1)
	if atomic.LoadInt32(&e.failNext) > 0 {
		atomic.AddInt32(&e.failNext, -1)
		return nil, errors.New("boom")
	}
	if _, ok := p.(methods.GetMe); ok {
		return e.getMeBody, nil
	}
	return json.RawMessage(`true`), nil
}

func TestCacheMemoizesGetMeAfterFirstSuccess(t *testing.T) {
	t.Parallel()

	inner := &countingExecutor{getMeBody: json.RawMessage(`{"id":1,"is_bot":true,"first_name":"bot"}`)}
	bot := adaptors.Cache(tgbotkit.Bot{}.WithExecutor(inner))

	for i := 0; i < 5; i++ {
		if _, err := bot.GetMe().Send(context.Background()); err != nil {
			t.Fatalf("GetMe() call %d error = %v", i, err)
		}
	}

	if got := atomic.LoadInt32(&inner.calls); got != 1 {
		t.Fatalf("inner executor called %d times, want exactly 1 (memoized)", got)
	}
}

func TestCacheDoesNotMemoizeAnError(t *testing.T) {
	t.Parallel()

	inner := &countingExecutor{failNext: 1, getMeBody: json.RawMessage(`{"id":1,"is_bot":true,"first_name":"bot"}`)}
	bot := adaptors.Cache(tgbotkit.Bot{}.WithExecutor(inner))

	if _, err := bot.GetMe().Send(context.Background()); err == nil {
		t.Fatalf("GetMe() first call error = nil, want an error")
	}
	if _, err := bot.GetMe().Send(context.Background()); err != nil {
		t.Fatalf("GetMe() second call error = %v, want nil (the failure should not be cached)", err)
	}
	if got := atomic.LoadInt32(&inner.calls); got != 2 {
		t.Fatalf("inner executor called %d times, want 2 (error not cached, success cached after)", got)
	}
}

func TestCacheDoesNotIntercedeOtherMethods(t *testing.T) {
	t.Parallel()

	inner := &countingExecutor{}
	bot := adaptors.Cache(tgbotkit.Bot{}.WithExecutor(inner))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = bot.SendChatAction(1, "typing").Send(context.Background())
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&inner.calls); got != 10 {
		t.Fatalf("inner executor called %d times for non-GetMe calls, want 10 (no caching)", got)
	}
}
