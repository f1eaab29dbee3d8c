package updates

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"tgbotkit"
	"tgbotkit/methods"
)

// stubExecutor answers every call with a fixed JSON body, recording every
// payload it saw so a test can inspect what setWebhook/deleteWebhook were
// called with.
type stubExecutor struct {
	mu    sync.Mutex
	calls []tgbotkit.Payload
}

func (e *stubExecutor) Call(_ context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	e.mu.Lock()
	e.calls = append(e.calls, p)
	e.mu.Unlock()
	return json.RawMessage(`true`), nil
}

func (e *stubExecutor) find(pred func(tgbotkit.Payload) bool) tgbotkit.Payload {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.calls {
		if pred(c) {
			return c
		}
	}
	return nil
}

func TestWebhookHandleRejectsWrongSecretToken(t *testing.T) {
	t.Parallel()

	l := NewWebhook(tgbotkit.Bot{}.WithExecutor(&stubExecutor{}), WebhookConfig{SecretToken: "right-token"}).(*webhookListener)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"update_id":1}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong-token")
	rec := httptest.NewRecorder()

	l.handle(rec, req)

	if rec.Code != 401 {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookHandleDeliversValidUpdate(t *testing.T) {
	t.Parallel()

	l := NewWebhook(tgbotkit.Bot{}.WithExecutor(&stubExecutor{}), WebhookConfig{SecretToken: "s3cr3t"}).(*webhookListener)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"update_id":7,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"}}}`))
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "s3cr3t")
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.handle(rec, req)
	}()

	u := <-l.ch
	<-done

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if u.ID != 7 {
		t.Fatalf("delivered update id = %d, want 7", u.ID)
	}
}

func TestWebhookHandleRejectsMalformedBodyAndEmitsErr(t *testing.T) {
	t.Parallel()

	l := NewWebhook(tgbotkit.Bot{}.WithExecutor(&stubExecutor{}), WebhookConfig{}).(*webhookListener)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	l.handle(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	select {
	case err := <-l.errs:
		if err == nil {
			t.Fatalf("received nil error on Errs()")
		}
	default:
		t.Fatalf("malformed payload did not emit an error on Errs()")
	}
}

func TestWebhookRunGeneratesSecretTokenWhenUnset(t *testing.T) {
	t.Parallel()

	exec := &stubExecutor{}
	l := NewWebhook(tgbotkit.Bot{}.WithExecutor(exec), WebhookConfig{ListenAddr: "127.0.0.1:0"}).(*webhookListener)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- l.Run(ctx) }()

	var setWebhook *methods.SetWebhook
	deadline := time.After(2 * time.Second)
	for setWebhook == nil {
		select {
		case <-deadline:
			t.Fatalf("setWebhook was never called")
		case <-time.After(time.Millisecond):
			if p := exec.find(func(p tgbotkit.Payload) bool { _, ok := p.(*methods.SetWebhook); return ok }); p != nil {
				setWebhook = p.(*methods.SetWebhook)
			}
		}
	}

	cancel()
	<-runDone

	if setWebhook.SecretToken == "" {
		t.Fatalf("setWebhook.SecretToken is empty, want a generated token")
	}
	if !ValidSecretToken(setWebhook.SecretToken) {
		t.Fatalf("generated SecretToken %q is not accepted by ValidSecretToken", setWebhook.SecretToken)
	}
}
