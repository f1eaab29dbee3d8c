package dispatch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tgbotkit/dispatch"
	"tgbotkit/types"
)

// fakeListener is a minimal updates.Listener a test drives by hand: pushing
// updates directly onto Updates() and deciding when Run/Stop observe a
// shutdown, without any real network or long-poll behavior.
type fakeListener struct {
	ch   chan types.Update
	errs chan error

	stopOnce sync.Once
	stopCh   chan struct{}
}

func newFakeListener() *fakeListener {
	return &fakeListener{
		ch:     make(chan types.Update),
		errs:   make(chan error),
		stopCh: make(chan struct{}),
	}
}

func (f *fakeListener) Updates() <-chan types.Update { return f.ch }
func (f *fakeListener) Errs() <-chan error           { return f.errs }

func (f *fakeListener) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
	case <-f.stopCh:
	}
	close(f.ch)
	close(f.errs)
	return nil
}

func (f *fakeListener) Stop() {
	f.stopOnce.Do(func() { close(f.stopCh) })
}

func chatMessage(chatID int64, text string) types.Update {
	return types.Update{
		Kind:    types.KindMessage,
		Message: &types.Message{Chat: types.Chat{ID: types.ChatID(chatID)}, Text: text},
	}
}

func TestDispatcherOrdersUpdatesPerChat(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var seen []string

	root := dispatch.EndpointNode(func(_ context.Context, u types.Update, _ *dispatch.DepMap) error {
		time.Sleep(5 * time.Millisecond) // widen the window a race would need to land in
		mu.Lock()
		seen = append(seen, u.Message.Text)
		mu.Unlock()
		return nil
	})

	d := dispatch.New(root, 4)
	l := newFakeListener()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- d.Run(ctx, l) }()

	const chatID = 42
	for i := 0; i < 5; i++ {
		l.ch <- chatMessage(chatID, string(rune('a'+i)))
	}

	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := <-runDone; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"a", "b", "c", "d", "e"}
	if len(seen) != len(want) {
		t.Fatalf("handled %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("handled %v, want %v (same-chat updates must run in arrival order)", seen, want)
		}
	}
}

func TestDispatcherRunsDifferentChatsConcurrently(t *testing.T) {
	t.Parallel()

	const chats = 4
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(chats)

	root := dispatch.EndpointNode(func(_ context.Context, u types.Update, _ *dispatch.DepMap) error {
		wg.Done()
		<-release // every chat's handler must be running before any returns
		return nil
	})

	d := dispatch.New(root, 4)
	l := newFakeListener()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- d.Run(ctx, l) }()

	for i := 0; i < chats; i++ {
		l.ch <- chatMessage(int64(i+1), "hi")
	}

	allRunning := make(chan struct{})
	go func() { wg.Wait(); close(allRunning) }()

	select {
	case <-allRunning:
	case <-time.After(2 * time.Second):
		t.Fatalf("not every chat's handler started concurrently — one chat's worker blocked another's")
	}
	close(release)

	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	<-runDone
}

func TestDispatcherShutdownStopsListenerAndTransitionsState(t *testing.T) {
	t.Parallel()

	root := dispatch.EndpointNode(func(context.Context, types.Update, *dispatch.DepMap) error { return nil })
	d := dispatch.New(root, 4)
	l := newFakeListener()

	if got := d.State(); got != dispatch.StateIdle {
		t.Fatalf("State() before Run() = %v, want StateIdle", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- d.Run(ctx, l) }()

	// Give Run a moment to flip to Running before asking it to stop.
	for i := 0; i < 100 && d.State() != dispatch.StateRunning; i++ {
		time.Sleep(time.Millisecond)
	}
	if got := d.State(); got != dispatch.StateRunning {
		t.Fatalf("State() after Run() started = %v, want StateRunning", got)
	}

	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case <-runDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run() did not return after Shutdown() — Shutdown should stop the listener itself")
	}

	if got := d.State(); got != dispatch.StateIdle {
		t.Fatalf("State() after Run() returned = %v, want StateIdle", got)
	}

	if err := d.Shutdown(); err != dispatch.ErrNotRunning {
		t.Fatalf("Shutdown() while Idle = %v, want ErrNotRunning", err)
	}
}

func TestDispatcherAllowedUpdateKinds(t *testing.T) {
	t.Parallel()

	precise := dispatch.Branch(
		dispatch.FilterKind(types.KindMessage, dispatch.EndpointNode(func(context.Context, types.Update, *dispatch.DepMap) error { return nil })),
		dispatch.FilterKind(types.KindCallbackQuery, dispatch.EndpointNode(func(context.Context, types.Update, *dispatch.DepMap) error { return nil })),
	)
	d := dispatch.New(precise, 1)
	kinds, ok := d.AllowedUpdateKinds()
	if !ok {
		t.Fatalf("AllowedUpdateKinds() ok = false, want true")
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		seen[k] = true
	}
	if !seen["message"] || !seen["callback_query"] || len(kinds) != 2 {
		t.Fatalf("AllowedUpdateKinds() = %v, want exactly [message, callback_query]", kinds)
	}

	vague := dispatch.Filter(func(types.Update) bool { return true },
		dispatch.EndpointNode(func(context.Context, types.Update, *dispatch.DepMap) error { return nil }))
	d2 := dispatch.New(vague, 1)
	if _, ok := d2.AllowedUpdateKinds(); ok {
		t.Fatalf("AllowedUpdateKinds() ok = true, want false for an opaque Filter predicate")
	}
}
