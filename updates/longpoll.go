package updates

import (
	"context"
	"time"

	"tgbotkit"
	"tgbotkit/methods"
	"tgbotkit/tglog"
	"tgbotkit/types"

	"go.uber.org/zap"
)

// LongPollConfig configures a long-polling Listener.
type LongPollConfig struct {
	// Timeout is the server-side long-poll wait, in seconds (getUpdates'
	// "timeout" field). Defaults to 30.
	Timeout int
	// Limit caps how many updates getUpdates returns per call. Defaults to
	// the server's own default (100) when zero.
	Limit int
	// AllowedUpdates restricts which update kinds are delivered; nil means
	// the server's default set.
	AllowedUpdates []string
	// DropPendingUpdates, if true, discards any updates already queued on
	// the server before polling begins (issued via deleteWebhook).
	DropPendingUpdates bool
	// ErrorBackoff is how long to wait after a getUpdates call fails before
	// retrying. Defaults to 1s.
	ErrorBackoff time.Duration
}

func (c LongPollConfig) withDefaults() LongPollConfig {
	if c.Timeout <= 0 {
		c.Timeout = 30
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = time.Second
	}
	return c
}

// longPollListener implements Listener by repeatedly calling getUpdates,
// modeled on the teacher's monitorLoop shape: a context-cancelable loop that
// drains cleanly on stop rather than being killed mid-iteration.
type longPollListener struct {
	bot    tgbotkit.Bot
	cfg    LongPollConfig
	ch     chan types.Update
	errs   chan error
	stop   chan struct{}
	done   chan struct{}
	offset int64
}

// NewLongPoll builds a Listener that polls bot via getUpdates.
func NewLongPoll(bot tgbotkit.Bot, cfg LongPollConfig) Listener {
	return &longPollListener{
		bot:  bot,
		cfg:  cfg.withDefaults(),
		ch:   make(chan types.Update),
		errs: make(chan error, 8),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (l *longPollListener) Updates() <-chan types.Update { return l.ch }

func (l *longPollListener) Errs() <-chan error { return l.errs }

func (l *longPollListener) emitErr(err error) {
	tglog.Warn("updates: getUpdates failed", zap.Error(err))
	select {
	case l.errs <- err:
	default:
	}
}

func (l *longPollListener) Run(ctx context.Context) error {
	defer close(l.ch)
	defer close(l.errs)
	defer close(l.done)

	if _, err := l.bot.DeleteWebhook(&methods.DeleteWebhook{DropPendingUpdates: l.cfg.DropPendingUpdates}).Send(ctx); err != nil {
		tglog.Warn("updates: deleteWebhook before polling failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			l.flush()
			return ctx.Err()
		case <-l.stop:
			l.flush()
			return nil
		default:
		}

		batch, err := l.bot.GetUpdates(&methods.GetUpdates{
			Offset:         l.offset,
			Limit:          l.cfg.Limit,
			TimeoutSeconds: l.cfg.Timeout,
			AllowedUpdates: l.cfg.AllowedUpdates,
		}).Send(ctx)
		if err != nil {
			l.emitErr(err)
			select {
			case <-ctx.Done():
				l.flush()
				return ctx.Err()
			case <-l.stop:
				l.flush()
				return nil
			case <-time.After(l.cfg.ErrorBackoff):
			}
			continue
		}

		for _, u := range batch {
			if u.ID >= l.offset {
				l.offset = u.ID + 1
			}
			select {
			case l.ch <- u:
			case <-ctx.Done():
				l.flush()
				return ctx.Err()
			case <-l.stop:
				l.flush()
				return nil
			}
		}
	}
}

// flush issues one final zero-timeout, limit-1 getUpdates call on the way
// out so the offset this listener already consumed is acknowledged to the
// remote API even though nothing will poll again after this. Best-effort:
// it runs against a short-lived context of its own since the one Run was
// given may already be canceled.
func (l *longPollListener) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batch, err := l.bot.GetUpdates(&methods.GetUpdates{
		Offset:         l.offset,
		Limit:          1,
		TimeoutSeconds: 0,
	}).Send(ctx)
	if err != nil {
		l.emitErr(err)
		return
	}
	for _, u := range batch {
		if u.ID >= l.offset {
			l.offset = u.ID + 1
		}
		select {
		case l.ch <- u:
		default:
		}
	}
}

func (l *longPollListener) Stop() {
	select {
	case <-l.stop:
	default:
		close(l.stop)
	}
	<-l.done
}
