// Package dialogue implements the per-chat state machine storage contract
// from spec.md §4.8: get/update/remove against one of three backends
// (in-memory, SQL, bbolt key-value), plus an erasure wrapper so callers can
// hold storages of different concrete types interchangeably.
package dialogue

import (
	"context"
	"errors"

	"tgbotkit/types"
)

// ErrNotFound is returned by Remove when chatID has no stored state, across
// every backend in this package — the Open Question in spec.md §9 is
// resolved uniformly in favor of erroring rather than succeeding silently.
var ErrNotFound = errors.New("dialogue: no state for chat")

// Storage is the per-chat state machine storage contract. State is an
// opaque value the caller's dialogue state type fills in; State
// implementations are responsible for their own (de)serialization where the
// backend requires it (see SQLStorage, BoltStorage).
type Storage[State any] interface {
	Get(ctx context.Context, chatID types.ChatID) (State, bool, error)
	Update(ctx context.Context, chatID types.ChatID, state State) error
	Remove(ctx context.Context, chatID types.ChatID) error
}
