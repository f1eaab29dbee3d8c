package tgbotkit

import (
	"context"
	"encoding/json"
)

// Executor issues one API call and returns the raw "result" field of the
// envelope (see transport.Client, which is the only concrete Executor this
// module's facade wires up). Adaptors (package adaptors) are Executor
// decorators — the same shape as net/http.RoundTripper — which is how the
// cache, throttle, and trace adaptors transform selected calls while
// forwarding the rest unchanged, without needing a distinct wrapper type per
// adaptor (see DESIGN.md).
type Executor interface {
	Call(ctx context.Context, p Payload) (json.RawMessage, error)
}

// Request is a Payload bound to the Executor that will send it. R is the
// payload's associated return type. Per spec.md §3, Send consumes the
// request by value semantics (Go can't enforce move-only types, but callers
// should treat a sent Request as done), while SendRef may be called
// repeatedly and each call produces an independent result — it never
// mutates or memoizes on the Request itself.
type Request[P Payload, R any] struct {
	payload P
	exec    Executor
}

// NewRequest builds a Request bound to exec. Facade methods in this module
// call it once per method; adaptors change behavior by supplying a
// decorated Executor, not by constructing a different Request type.
func NewRequest[P Payload, R any](exec Executor, payload P) *Request[P, R] {
	return &Request[P, R]{payload: payload, exec: exec}
}

// Payload returns a copy of the bound payload value. Because payload types
// in package methods are pointers (e.g. *methods.SendMessage), mutating
// through the returned value mutates the request in place — mirroring
// payload_mut in spec.md §4.2.
func (r *Request[P, R]) Payload() P { return r.payload }

// Send executes the request, consuming it by convention (see the type
// doc). It is safe to call Send more than once; each call issues a new
// underlying API call, exactly like SendRef.
func (r *Request[P, R]) Send(ctx context.Context) (R, error) {
	return Do[R](ctx, r.exec, r.payload)
}

// SendRef executes the request by (conceptual) shared reference: it never
// mutates the Request and may be called any number of times, each call
// producing an independent result. In this Go port Send and SendRef have
// identical bodies — the distinction exists in the source language to track
// ownership, which Go doesn't enforce — but adaptors that need "send without
// consuming the caller's handle" (the throttle retry loop) always go through
// SendRef so that intent stays visible at call sites.
func (r *Request[P, R]) SendRef(ctx context.Context) (R, error) {
	return Do[R](ctx, r.exec, r.payload)
}

// Do runs a single Payload through exec and decodes its result as R. It is
// the free function every facade method and every adaptor ultimately
// bottoms out on, since Go methods can't introduce their own type
// parameters.
func Do[R any](ctx context.Context, exec Executor, p Payload) (R, error) {
	var zero R
	raw, err := exec.Call(ctx, p)
	if err != nil {
		return zero, err
	}
	if len(raw) == 0 {
		// Some methods (deleteMessage, answerCallbackQuery, ...) return a
		// bare `true`; decoding into R where R is bool handles that, and
		// an empty result for any other R is a genuine decode failure.
		if _, isBool := any(zero).(bool); isBool {
			return zero, nil
		}
	}
	var out R
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &Error{Kind: KindDecode, Err: err}
	}
	return out, nil
}
