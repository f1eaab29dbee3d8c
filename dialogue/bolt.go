package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"

	"tgbotkit/types"
)

// BoltStorage is the key-value-backed Storage from spec.md §4.8: one key
// per chat id within a dedicated bucket, using bbolt — the teacher's own
// embedded-store choice (internal/infra/telegram/peersmgr/manager.go wraps
// bbolt the same way, one bucket per concern). Serialization is pluggable
// via the Codec field; the zero value uses JSON.
type BoltStorage[State any] struct {
	db     *bbolt.DB
	bucket []byte
	codec  Codec[State]
}

// Codec (de)serializes a State value for storage; NewBoltStorage defaults to
// JSONCodec when none is given.
type Codec[State any] interface {
	Encode(State) ([]byte, error)
	Decode([]byte) (State, error)
}

// JSONCodec is the default Codec, using encoding/json.
type JSONCodec[State any] struct{}

func (JSONCodec[State]) Encode(s State) ([]byte, error) { return json.Marshal(s) }
func (JSONCodec[State]) Decode(b []byte) (State, error) {
	var s State
	err := json.Unmarshal(b, &s)
	return s, err
}

// NewBoltStorage opens the named bucket (creating it if necessary) within
// db. A nil codec defaults to JSONCodec[State].
func NewBoltStorage[State any](db *bbolt.DB, bucket string, codec Codec[State]) (*BoltStorage[State], error) {
	if codec == nil {
		codec = JSONCodec[State]{}
	}
	s := &BoltStorage[State]{db: db, bucket: []byte(bucket), codec: codec}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dialogue: failed to create bucket %q: %w", bucket, err)
	}
	return s, nil
}

func (s *BoltStorage[State]) Get(_ context.Context, chatID types.ChatID) (State, bool, error) {
	var zero State
	var found bool
	var raw []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		v := b.Get(chatIDKey(chatID))
		if v == nil {
			return nil
		}
		found = true
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}

	state, err := s.codec.Decode(raw)
	if err != nil {
		return zero, false, fmt.Errorf("dialogue: failed to decode state: %w", err)
	}
	return state, true, nil
}

func (s *BoltStorage[State]) Update(_ context.Context, chatID types.ChatID, state State) error {
	raw, err := s.codec.Encode(state)
	if err != nil {
		return fmt.Errorf("dialogue: failed to encode state: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		return b.Put(chatIDKey(chatID), raw)
	})
}

func (s *BoltStorage[State]) Remove(_ context.Context, chatID types.ChatID) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return ErrNotFound
		}
		if b.Get(chatIDKey(chatID)) == nil {
			return ErrNotFound
		}
		return b.Delete(chatIDKey(chatID))
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// chatIDKey uses the "teloxide:dialogue:{chat_id}" namespace SPEC_FULL.md §9
// documents for the KV backend's external interface, so a key dump is
// self-describing rather than a bare integer string.
func chatIDKey(chatID types.ChatID) []byte {
	return []byte("teloxide:dialogue:" + strconv.FormatInt(int64(chatID), 10))
}
