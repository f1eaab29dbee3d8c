package dialogue

import (
	"context"
	"sync"

	"tgbotkit/types"
)

// MemoryStorage is a hash-map-protected-by-a-mutex Storage, the teacher's
// standard shape for small process-local state (internal/infra/telegram/
// cache.PeerCache uses the same pattern for a different value type).
type MemoryStorage[State any] struct {
	mu     sync.Mutex
	states map[types.ChatID]State
}

// NewMemoryStorage builds an empty MemoryStorage.
func NewMemoryStorage[State any]() *MemoryStorage[State] {
	return &MemoryStorage[State]{states: make(map[types.ChatID]State)}
}

func (m *MemoryStorage[State]) Get(_ context.Context, chatID types.ChatID) (State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[chatID]
	return s, ok, nil
}

func (m *MemoryStorage[State]) Update(_ context.Context, chatID types.ChatID, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chatID] = state
	return nil
}

func (m *MemoryStorage[State]) Remove(_ context.Context, chatID types.ChatID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.states[chatID]; !ok {
		return ErrNotFound
	}
	delete(m.states, chatID)
	return nil
}
