package dialogue_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.etcd.io/bbolt"

	"tgbotkit/dialogue"
	"tgbotkit/types"
)

type boltState struct {
	Step int
}

func openTestBolt(t *testing.T) *bbolt.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dialogue.db")
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		t.Fatalf("bbolt.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBoltStorageGetUpdateRemove(t *testing.T) {
	t.Parallel()

	db := openTestBolt(t)
	store, err := dialogue.NewBoltStorage[boltState](db, "dialogues", nil)
	if err != nil {
		t.Fatalf("NewBoltStorage() error = %v", err)
	}

	ctx := context.Background()
	chat := types.ChatID(123)

	if _, found, err := store.Get(ctx, chat); err != nil || found {
		t.Fatalf("Get() before Update = (_, %v, %v), want (_, false, nil)", found, err)
	}

	if err := store.Update(ctx, chat, boltState{Step: 2}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, found, err := store.Get(ctx, chat)
	if err != nil || !found {
		t.Fatalf("Get() after Update = (_, %v, %v), want (_, true, nil)", found, err)
	}
	if got.Step != 2 {
		t.Fatalf("Get() = %+v, want Step 2", got)
	}

	if err := store.Remove(ctx, chat); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, found, _ := store.Get(ctx, chat); found {
		t.Fatalf("Get() after Remove() found a row, want none")
	}
}

func TestBoltStorageRemoveMissingIsNotFound(t *testing.T) {
	t.Parallel()

	db := openTestBolt(t)
	store, err := dialogue.NewBoltStorage[boltState](db, "dialogues", nil)
	if err != nil {
		t.Fatalf("NewBoltStorage() error = %v", err)
	}

	err = store.Remove(context.Background(), types.ChatID(999))
	if !errors.Is(err, dialogue.ErrNotFound) {
		t.Fatalf("Remove() on a missing chat = %v, want ErrNotFound", err)
	}
}

func TestBoltStorageKeyIsNamespaced(t *testing.T) {
	t.Parallel()

	db := openTestBolt(t)
	store, err := dialogue.NewBoltStorage[boltState](db, "dialogues", nil)
	if err != nil {
		t.Fatalf("NewBoltStorage() error = %v", err)
	}
	if err := store.Update(context.Background(), types.ChatID(7), boltState{Step: 1}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte("dialogues"))
		if b == nil {
			t.Fatalf("bucket %q not found", "dialogues")
		}
		if b.Get([]byte("teloxide:dialogue:7")) == nil {
			t.Fatalf("no value stored under the documented key %q", "teloxide:dialogue:7")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("db.View() error = %v", err)
	}
}
