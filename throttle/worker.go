// Package throttle is the background worker that enforces per-chat,
// per-group, and global send-rate limits, consulting freeze notifications
// from RetryAfter responses. It generalizes the teacher's Throttler (token
// bucket + retry loop, internal/infra/throttle/throttler.go) from a single
// rate into the three-window admission scheme and adds the freeze map the
// teacher's StopRetryer/WaitExtractor hooks only express as a single hook.
package throttle

import (
	"container/list"
	"context"
	"sync"
	"time"

	"tgbotkit/types"
)

// Settings configures the three admission windows and the queue-full /
// retry-on-429 policy.
type Settings struct {
	PerSecondPerChat  int
	PerMinutePerGroup int
	PerSecondOverall  int
	RetryOn429        bool
	QueueCapacity     int // 0 defaults to PerSecondOverall
}

// DefaultSettings mirrors the Bot API's documented limits: 1 msg/sec to a
// private chat, 20 msg/min to a group, 30 msg/sec overall.
func DefaultSettings() Settings {
	return Settings{
		PerSecondPerChat:  1,
		PerMinutePerGroup: 20,
		PerSecondOverall:  30,
		RetryOn429:        true,
	}
}

// request is one admission request waiting in the queue.
type request struct {
	chat   types.ChatKey
	group  bool // true if this chat key is group/supergroup/channel-scoped
	result chan admission
}

// admission is the worker's one-shot reply to a queued request.
type admission struct {
	retryEnabled bool
	freeze       chan<- FreezeReport
}

// FreezeReport is sent back to the worker by a caller whose send returned
// RetryAfter, so the worker can freeze that chat key until the instant
// supplied.
type FreezeReport struct {
	Chat  types.ChatKey
	Until time.Time
}

// limitsRequest is GetLimits/SetLimits' control-channel message: Update is
// nil for a read-only Get, non-nil for a Set, and the loop always answers
// with the settings now in effect (the new ones, for a Set).
type limitsRequest struct {
	update *Settings
	reply  chan Settings
}

// Worker is the single background task that owns all throttle state:
// per-chat and global send histories, the freeze map, and the admission
// queue. Nothing outside Worker ever mutates this state — exactly the
// teacher's "single owner, channel-fed" shape (internal/concurrency.Debouncer).
// settings is only ever read or written from within loop; GetLimits/SetLimits
// go through control rather than touching the field directly.
type Worker struct {
	settings Settings

	queue   chan *request
	freeze  chan FreezeReport
	control chan limitsRequest

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewWorker builds a Worker; call Run to start it.
func NewWorker(settings Settings) *Worker {
	cap := settings.QueueCapacity
	if cap <= 0 {
		cap = settings.PerSecondOverall
	}
	if cap <= 0 {
		cap = 1
	}
	return &Worker{
		settings: settings,
		queue:    make(chan *request, cap),
		freeze:   make(chan FreezeReport, cap),
		control:  make(chan limitsRequest),
		done:     make(chan struct{}),
	}
}

// Run starts the worker's admission loop. It blocks until ctx is canceled or
// Stop is called; callers typically run it in its own goroutine.
func (w *Worker) Run(ctx context.Context) {
	w.startOnce.Do(func() {
		ctx, w.cancel = context.WithCancel(ctx)
		w.loop(ctx)
		close(w.done)
	})
}

// Stop cancels the worker's loop and waits for it to exit. Idempotent.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
	})
	<-w.done
}

// Acquire enqueues an admission request for chat, blocking until the worker
// admits it (natural backpressure, per spec §4.5's explicit blocking-queue
// resolution) or ctx is canceled. On success it returns whether retry-on-429
// is enabled and a channel to report a RetryAfter-induced freeze on.
//
// If the worker has stopped (or was never started) before or while this
// call is waiting, w.done is closed; Acquire then bypasses throttling
// entirely and returns immediately as if admitted, rather than blocking
// forever on a worker that will never read its queue again.
func (w *Worker) Acquire(ctx context.Context, chat types.ChatKey) (retryEnabled bool, report func(time.Time), err error) {
	r := &request{chat: chat, group: chat.IsGroupScoped(), result: make(chan admission, 1)}

	select {
	case w.queue <- r:
	case <-w.done:
		return false, nil, nil
	case <-ctx.Done():
		return false, nil, ctx.Err()
	}

	select {
	case a, ok := <-r.result:
		if !ok {
			// drainPending closed this without an admission: shutdown raced
			// the send above. Bypass rather than report a spurious error.
			return false, nil, nil
		}
		reportFn := func(until time.Time) {
			select {
			case a.freeze <- FreezeReport{Chat: chat, Until: until}:
			default:
			}
		}
		return a.retryEnabled, reportFn, nil
	case <-w.done:
		return false, nil, nil
	case <-ctx.Done():
		return false, nil, ctx.Err()
	}
}

// GetLimits returns the settings currently in effect, round-tripping
// through the worker's loop so the read never races its mutation of
// settings. If the worker isn't running, it returns the settings it was
// constructed with.
func (w *Worker) GetLimits(ctx context.Context) (Settings, error) {
	return w.exchangeLimits(ctx, nil)
}

// SetLimits replaces the settings in effect at runtime — spec.md §4.5's
// "configuration controls at runtime" operation — and returns the settings
// now in effect. Changes apply to the next admission pass; requests already
// queued are unaffected until then.
func (w *Worker) SetLimits(ctx context.Context, s Settings) (Settings, error) {
	return w.exchangeLimits(ctx, &s)
}

func (w *Worker) exchangeLimits(ctx context.Context, update *Settings) (Settings, error) {
	req := limitsRequest{update: update, reply: make(chan Settings, 1)}

	select {
	case w.control <- req:
	case <-w.done:
		return w.settings, nil
	case <-ctx.Done():
		return Settings{}, ctx.Err()
	}

	select {
	case s := <-req.reply:
		return s, nil
	case <-w.done:
		return w.settings, nil
	case <-ctx.Done():
		return Settings{}, ctx.Err()
	}
}

// history is a sliding-window event count: timestamps of admitted sends
// within the window, oldest first.
type history struct {
	events *list.List
}

func newHistory() *history { return &history{events: list.New()} }

func (h *history) prune(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	for h.events.Len() > 0 {
		front := h.events.Front()
		if front.Value.(time.Time).After(cutoff) {
			break
		}
		h.events.Remove(front)
	}
}

func (h *history) count() int { return h.events.Len() }

func (h *history) record(now time.Time) { h.events.PushBack(now) }

// loop is the worker's single-threaded admission algorithm, following
// spec.md §4.5 steps 1-5 verbatim: drain expired history entries, walk the
// pending queue admitting what the three windows allow, record admissions,
// and apply freeze reports as they arrive.
func (w *Worker) loop(ctx context.Context) {
	perChat := map[types.ChatKey]*history{}
	perGroup := map[types.ChatKey]*history{}
	global := newHistory()
	freezeUntil := map[types.ChatKey]time.Time{}

	pending := list.New()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.drainPending(pending)
			return
		case r := <-w.queue:
			pending.PushBack(r)
		case f := <-w.freeze:
			freezeUntil[f.Chat] = f.Until
		case cr := <-w.control:
			if cr.update != nil {
				w.settings = *cr.update
			}
			cr.reply <- w.settings
		case <-ticker.C:
		}

		now := time.Now()
		global.prune(now, time.Second)
		for k, h := range perChat {
			h.prune(now, time.Second)
			if h.count() == 0 {
				delete(perChat, k)
			}
		}
		for k, h := range perGroup {
			h.prune(now, time.Minute)
			if h.count() == 0 {
				delete(perGroup, k)
			}
		}
		for k, until := range freezeUntil {
			if !until.After(now) {
				delete(freezeUntil, k)
			}
		}

		w.admitPending(pending, now, perChat, perGroup, global, freezeUntil)
	}
}

func (w *Worker) admitPending(
	pending *list.List,
	now time.Time,
	perChat, perGroup map[types.ChatKey]*history,
	global *history,
	freezeUntil map[types.ChatKey]time.Time,
) {
	var next *list.Element
	for e := pending.Front(); e != nil; e = next {
		next = e.Next()
		r := e.Value.(*request)

		if until, frozen := freezeUntil[r.chat]; frozen && until.After(now) {
			continue
		}

		chatHist := perChat[r.chat]
		if chatHist != nil {
			chatHist.prune(now, time.Second)
		}
		if chatHist != nil && chatHist.count() >= w.settings.PerSecondPerChat {
			continue
		}

		if r.group {
			groupHist := perGroup[r.chat]
			if groupHist != nil {
				groupHist.prune(now, time.Minute)
			}
			if groupHist != nil && groupHist.count() >= w.settings.PerMinutePerGroup {
				continue
			}
		}

		global.prune(now, time.Second)
		if global.count() >= w.settings.PerSecondOverall {
			continue
		}

		if chatHist == nil {
			chatHist = newHistory()
			perChat[r.chat] = chatHist
		}
		chatHist.record(now)
		if r.group {
			groupHist := perGroup[r.chat]
			if groupHist == nil {
				groupHist = newHistory()
				perGroup[r.chat] = groupHist
			}
			groupHist.record(now)
		}
		global.record(now)

		pending.Remove(e)
		r.result <- admission{retryEnabled: w.settings.RetryOn429, freeze: w.freeze}
	}
}

func (w *Worker) drainPending(pending *list.List) {
	for e := pending.Front(); e != nil; e = e.Next() {
		r := e.Value.(*request)
		close(r.result)
	}
}
