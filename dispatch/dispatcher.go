package dispatch

import (
	"context"
	"errors"
	"sync"

	"tgbotkit/tglog"
	"tgbotkit/types"
	"tgbotkit/updates"

	"go.uber.org/zap"
)

// State enumerates the dispatcher's three observable shutdown states.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateShuttingDown
)

// DistKey computes the per-update distribution key; updates sharing a key
// are serialized against each other, while updates with different keys run
// concurrently. The default, ChatDistKey, serializes per chat.
type DistKey func(types.Update) (string, bool)

// ChatDistKey is the default DistKey: updates are serialized per chat id,
// and updates with no associated chat (e.g. a bare inline_query) each get
// their own independent worker.
func ChatDistKey(u types.Update) (string, bool) {
	chat, ok := u.Chat()
	if !ok {
		return "", false
	}
	return chat.ID.String(), true
}

// ErrNotRunning is returned by Shutdown when called outside StateRunning.
var ErrNotRunning = errors.New("dispatch: shutdown called while not running")

// Dispatcher drives updates from a Listener through a handler DAG, spawning
// one worker goroutine per distribution key so that updates from the same
// chat are handled in arrival order while different chats run concurrently
// — the per-key-goroutine-fed-by-bounded-channel shape is grounded on the
// teacher's Debouncer/Deduplicator (internal/concurrency/debounce.go), and
// the dependency-ordered start/stop bookkeeping below generalizes
// lifecycle.Manager's node tracking to per-chat workers instead of
// named subsystems.
type Dispatcher struct {
	root       Node
	distKey    DistKey
	chanBuffer int
	onError    func(error)

	mu       sync.Mutex
	state    State
	workers  map[string]chan types.Update
	listener updates.Listener
	wg       sync.WaitGroup
}

// New builds a Dispatcher rooted at root. chanBuffer sizes each per-key
// worker's channel (0 means unbuffered, i.e. maximal backpressure).
func New(root Node, chanBuffer int) *Dispatcher {
	return &Dispatcher{
		root:       root,
		distKey:    ChatDistKey,
		chanBuffer: chanBuffer,
		onError:    func(err error) { tglog.Error("dispatch: endpoint error", zap.Error(err)) },
		workers:    make(map[string]chan types.Update),
	}
}

// WithDistKey overrides the default per-chat distribution key.
func (d *Dispatcher) WithDistKey(f DistKey) *Dispatcher { d.distKey = f; return d }

// WithErrorHandler overrides the default (log-and-continue) endpoint error
// handler.
func (d *Dispatcher) WithErrorHandler(f func(error)) *Dispatcher { d.onError = f; return d }

// AllowedUpdateKinds inspects the handler DAG rooted at d and returns the
// precise union of update kinds any reachable FilterKind (or everything
// FilterKind composes with) could require — the hint_allowed_updates
// spec.md §4.7 describes. ok is false if any node in the DAG didn't
// declare its kinds (an opaque Filter/FilterMap predicate, or a bare
// endpoint with no FilterKind above it), in which case kinds is nil and
// the caller should leave its Listener's AllowedUpdates unset rather than
// subscribe to an incomplete list.
//
// Callers compute this before constructing their Listener (Run takes an
// already-built one, since this module's Listener doesn't expose a way to
// change its subscription after Run starts):
//
//	if kinds, ok := d.AllowedUpdateKinds(); ok {
//	    cfg.AllowedUpdates = kinds
//	}
func (d *Dispatcher) AllowedUpdateKinds() (kinds []string, ok bool) {
	ks, ok := d.root.allowedKinds()
	if !ok {
		return nil, false
	}
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.String()
	}
	return out, true
}

// Run feeds updates from l into the dispatcher until ctx is canceled,
// Shutdown is called, or l's Updates channel closes. It blocks until every
// per-key worker has drained and returned.
func (d *Dispatcher) Run(ctx context.Context, l updates.Listener) error {
	d.mu.Lock()
	if d.state != StateIdle {
		d.mu.Unlock()
		return errors.New("dispatch: Run called more than once")
	}
	d.state = StateRunning
	d.listener = l
	d.mu.Unlock()

	listenerCtx, cancelListener := context.WithCancel(ctx)
	defer cancelListener()

	listenerErrCh := make(chan error, 1)
	go func() { listenerErrCh <- l.Run(listenerCtx) }()

	updatesCh := l.Updates()
	errsCh := l.Errs()
	for updatesCh != nil || errsCh != nil {
		select {
		case u, ok := <-updatesCh:
			if !ok {
				updatesCh = nil
				continue
			}
			d.dispatch(ctx, u)
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			d.onError(err)
		}
	}

	d.wg.Wait()

	d.mu.Lock()
	d.state = StateIdle
	d.listener = nil
	d.mu.Unlock()

	return <-listenerErrCh
}

func (d *Dispatcher) dispatch(ctx context.Context, u types.Update) {
	key, ok := d.distKey(u)
	if !ok {
		// No distribution key: run inline on its own goroutine so it
		// doesn't serialize against (or get serialized by) any chat.
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.handle(ctx, u)
		}()
		return
	}

	d.mu.Lock()
	if d.state == StateShuttingDown {
		d.mu.Unlock()
		return
	}
	ch, exists := d.workers[key]
	if !exists {
		ch = make(chan types.Update, d.chanBuffer)
		d.workers[key] = ch
		d.wg.Add(1)
		go d.worker(ctx, ch)
	}
	d.mu.Unlock()

	ch <- u
}

func (d *Dispatcher) worker(ctx context.Context, ch chan types.Update) {
	defer d.wg.Done()
	for u := range ch {
		d.handle(ctx, u)
	}
}

func (d *Dispatcher) handle(ctx context.Context, u types.Update) {
	deps := NewDepMap()
	deps.Insert(errorSink{handle: d.onError})
	d.root.walk(ctx, u, deps)
}

// Shutdown transitions Running -> ShuttingDown, stops the listener itself
// (spec.md §4.7 — Shutdown doesn't rely on the caller separately canceling
// Run's ctx; without this, Run's `for u := range l.Updates()` loop would
// never terminate on a Shutdown call alone), and waits for every in-flight
// handler to finish before closing each per-chat worker channel. Calling
// Shutdown while Idle returns ErrNotRunning.
func (d *Dispatcher) Shutdown() error {
	d.mu.Lock()
	if d.state != StateRunning {
		d.mu.Unlock()
		return ErrNotRunning
	}
	d.state = StateShuttingDown
	l := d.listener
	workers := make([]chan types.Update, 0, len(d.workers))
	for _, ch := range d.workers {
		workers = append(workers, ch)
	}
	d.workers = make(map[string]chan types.Update)
	d.mu.Unlock()

	if l != nil {
		l.Stop()
	}

	for _, ch := range workers {
		close(ch)
	}
	d.wg.Wait()
	return nil
}

// State reports the dispatcher's current shutdown state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}
