package updates

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"tgbotkit"
	"tgbotkit/methods"
	"tgbotkit/tglog"
	"tgbotkit/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookConfig configures a webhook Listener.
type WebhookConfig struct {
	// URL is the public HTTPS URL Telegram will POST updates to.
	URL string
	// ListenAddr is the local address http.Server listens on, e.g. ":8443".
	ListenAddr string
	// Path is the HTTP path updates are POSTed to; defaults to "/".
	Path string
	// SecretToken is compared against the X-Telegram-Bot-Api-Secret-Token
	// header on every request using a constant-time comparison, rejecting
	// mismatches with 401 before the body is even parsed. If empty, Run
	// generates a random 32-character token before calling setWebhook.
	SecretToken string
	// MaxConnections caps the number of simultaneous webhook deliveries
	// Telegram will hold open; 0 leaves it at the remote default.
	MaxConnections int
	// AllowedUpdates restricts which update kinds are delivered; nil leaves
	// it at whatever the bot was previously subscribed to (or everything,
	// for a never-configured bot).
	AllowedUpdates []string
	// DropPendingUpdates discards any update backlog accumulated before
	// this webhook registration takes effect.
	DropPendingUpdates bool
}

// webhookListener implements Listener by running an http.Server and
// registering itself with the remote API via setWebhook.
type webhookListener struct {
	bot    tgbotkit.Bot
	cfg    WebhookConfig
	ch     chan types.Update
	errs   chan error
	server *http.Server

	stopOnce sync.Once
}

// NewWebhook builds a Listener that registers cfg.URL with bot and serves
// updates POSTed back to cfg.ListenAddr/cfg.Path.
func NewWebhook(bot tgbotkit.Bot, cfg WebhookConfig) Listener {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	l := &webhookListener{bot: bot, cfg: cfg, ch: make(chan types.Update), errs: make(chan error, 8)}
	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, l.handle)
	l.server = &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	return l
}

func (l *webhookListener) Updates() <-chan types.Update { return l.ch }

func (l *webhookListener) Errs() <-chan error { return l.errs }

func (l *webhookListener) emitErr(err error) {
	select {
	case l.errs <- err:
	default:
	}
}

func (l *webhookListener) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if l.cfg.SecretToken != "" {
		got := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(l.cfg.SecretToken)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}

	// requestID has no meaning to Telegram; it exists purely so a malformed
	// or dropped delivery can be correlated across this one log line, since
	// webhook requests otherwise carry no identifier of their own.
	requestID := uuid.NewString()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		tglog.Warn("updates: failed to read webhook body", zap.String("request_id", requestID), zap.Error(err))
		l.emitErr(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var u types.Update
	if err := json.Unmarshal(body, &u); err != nil {
		tglog.Warn("updates: malformed webhook payload", zap.String("request_id", requestID), zap.Error(err))
		l.emitErr(err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	select {
	case l.ch <- u:
		w.WriteHeader(http.StatusOK)
	case <-r.Context().Done():
	}
}

func (l *webhookListener) Run(ctx context.Context) error {
	defer close(l.ch)
	defer close(l.errs)

	if l.cfg.SecretToken == "" {
		token, err := generateSecretToken()
		if err != nil {
			return err
		}
		l.cfg.SecretToken = token
	}

	_, err := l.bot.SetWebhook(&methods.SetWebhook{
		URL:                l.cfg.URL,
		MaxConnections:     l.cfg.MaxConnections,
		AllowedUpdates:     l.cfg.AllowedUpdates,
		DropPendingUpdates: l.cfg.DropPendingUpdates,
		SecretToken:        l.cfg.SecretToken,
	}).Send(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- l.server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		l.shutdown()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Stop requests a graceful shutdown: it issues deleteWebhook and shuts the
// HTTP listener down gracefully, waiting for in-flight deliveries to finish
// rather than severing them. Safe to call more than once, and safe to call
// concurrently with Run observing ctx cancellation — only the first caller
// does the work.
func (l *webhookListener) Stop() {
	l.shutdown()
}

func (l *webhookListener) shutdown() {
	l.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := l.bot.DeleteWebhook(&methods.DeleteWebhook{}).Send(ctx); err != nil {
			tglog.Warn("updates: deleteWebhook on stop failed", zap.Error(err))
		}
		if err := l.server.Shutdown(ctx); err != nil {
			tglog.Warn("updates: graceful webhook shutdown failed, forcing close", zap.Error(err))
			_ = l.server.Close()
		}
	})
}
