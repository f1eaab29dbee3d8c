package adaptors

import (
	"context"
	"encoding/json"

	"tgbotkit"
)

// parseModeExecutor injects a default parse mode into any payload
// implementing tgbotkit.ParseModeSetter that doesn't already have one set.
// The caller's own choice always wins, since SetParseModeIfUnset is a no-op
// when the field is already non-empty — this is the Go expression of
// spec.md §4.4's "inject at construction, caller may still override"
// contract without a per-payload-type facade override.
type parseModeExecutor struct {
	inner tgbotkit.Executor
	mode  string
}

// DefaultParseMode returns a Bot that sets mode on every outgoing payload
// that supports it and hasn't set one itself.
func DefaultParseMode(b tgbotkit.Bot, mode string) tgbotkit.Bot {
	return b.WithExecutor(&parseModeExecutor{inner: b.Executor(), mode: mode})
}

func (e *parseModeExecutor) Call(ctx context.Context, p tgbotkit.Payload) (json.RawMessage, error) {
	if setter, ok := p.(tgbotkit.ParseModeSetter); ok {
		setter.SetParseModeIfUnset(e.mode)
	}
	return e.inner.Call(ctx, p)
}
