package throttle_test

import (
	"context"
	"testing"
	"time"

	"tgbotkit/throttle"
	"tgbotkit/types"
)

func TestWorkerAdmitsWithinPerChatWindow(t *testing.T) {
	t.Parallel()

	w := throttle.NewWorker(throttle.Settings{
		PerSecondPerChat:  1,
		PerMinutePerGroup: 20,
		PerSecondOverall:  30,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	defer w.Stop()

	chat := types.ChatKeyFromID(types.ChatID(1))

	start := time.Now()
	if _, _, err := w.Acquire(context.Background(), chat); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	firstElapsed := time.Since(start)
	if firstElapsed > 300*time.Millisecond {
		t.Fatalf("first Acquire() took %v, want near-immediate", firstElapsed)
	}

	start = time.Now()
	if _, _, err := w.Acquire(context.Background(), chat); err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	secondElapsed := time.Since(start)
	if secondElapsed < 500*time.Millisecond {
		t.Fatalf("second Acquire() for the same chat admitted after %v, want it to wait out the 1/sec window", secondElapsed)
	}
}

func TestWorkerGetLimitsSetLimits(t *testing.T) {
	t.Parallel()

	w := throttle.NewWorker(throttle.Settings{PerSecondPerChat: 1, PerMinutePerGroup: 20, PerSecondOverall: 30})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	defer w.Stop()

	got, err := w.GetLimits(context.Background())
	if err != nil {
		t.Fatalf("GetLimits() error = %v", err)
	}
	if got.PerSecondPerChat != 1 || got.PerSecondOverall != 30 {
		t.Fatalf("GetLimits() = %+v, want the settings NewWorker was constructed with", got)
	}

	updated, err := w.SetLimits(context.Background(), throttle.Settings{PerSecondPerChat: 5, PerMinutePerGroup: 50, PerSecondOverall: 60})
	if err != nil {
		t.Fatalf("SetLimits() error = %v", err)
	}
	if updated.PerSecondPerChat != 5 || updated.PerSecondOverall != 60 {
		t.Fatalf("SetLimits() returned %+v, want the settings just applied", updated)
	}

	again, err := w.GetLimits(context.Background())
	if err != nil {
		t.Fatalf("GetLimits() after SetLimits() error = %v", err)
	}
	if again != updated {
		t.Fatalf("GetLimits() after SetLimits() = %+v, want %+v", again, updated)
	}
}

func TestWorkerGetLimitsBypassesAfterStop(t *testing.T) {
	t.Parallel()

	w := throttle.NewWorker(throttle.DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	cancel()
	w.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := w.GetLimits(context.Background()); err != nil {
			t.Errorf("GetLimits() on a stopped worker error = %v, want nil (bypass)", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("GetLimits() on a stopped worker blocked instead of bypassing")
	}
}

func TestWorkerAcquireRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	w := throttle.NewWorker(throttle.Settings{PerSecondPerChat: 1, PerMinutePerGroup: 20, PerSecondOverall: 30})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)
	defer w.Stop()

	chat := types.ChatKeyFromID(types.ChatID(2))
	if _, _, err := w.Acquire(context.Background(), chat); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	acquireCtx, acquireCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer acquireCancel()
	if _, _, err := w.Acquire(acquireCtx, chat); err == nil {
		t.Fatalf("second Acquire() with a short deadline succeeded, want context deadline exceeded")
	}
}
