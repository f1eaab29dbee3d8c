package dialogue

import (
	"context"

	"tgbotkit/types"
)

// ErasedStorage hides a Storage[State]'s concrete type and error type behind
// a uniform interface, so callers can hold storages backed by different
// implementations (memory, SQL, bbolt) interchangeably — spec.md §4.8's
// "Erasure" contract, and the Go analogue of teloxide's boxed-error
// dialogue storage wrapper.
type ErasedStorage[State any] interface {
	Get(ctx context.Context, chatID types.ChatID) (State, bool, error)
	Update(ctx context.Context, chatID types.ChatID, state State) error
	Remove(ctx context.Context, chatID types.ChatID) error
}

// Erase wraps any Storage[State] as an ErasedStorage[State]. Since Go
// interfaces already erase the concrete receiver type, this mainly documents
// intent at call sites that want to swap backends without changing their own
// type signature.
func Erase[State any](s Storage[State]) ErasedStorage[State] { return s }

// Dialogue binds one chat's conversation state to a storage backend,
// mirroring teloxide's Dialogue<State, Storage> handle.
type Dialogue[State any] struct {
	storage ErasedStorage[State]
	chatID  types.ChatID
}

// New binds chatID to storage.
func New[State any](storage ErasedStorage[State], chatID types.ChatID) Dialogue[State] {
	return Dialogue[State]{storage: storage, chatID: chatID}
}

// Get returns the chat's current state, if any.
func (d Dialogue[State]) Get(ctx context.Context) (State, bool, error) {
	return d.storage.Get(ctx, d.chatID)
}

// Update replaces the chat's state.
func (d Dialogue[State]) Update(ctx context.Context, state State) error {
	return d.storage.Update(ctx, d.chatID, state)
}

// Exit removes the chat's state, ending the dialogue.
func (d Dialogue[State]) Exit(ctx context.Context) error {
	return d.storage.Remove(ctx, d.chatID)
}
