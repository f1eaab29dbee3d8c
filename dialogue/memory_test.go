package dialogue_test

import (
	"context"
	"errors"
	"testing"

	"tgbotkit/dialogue"
	"tgbotkit/types"
)

type convState struct {
	Step int
	Name string
}

func TestMemoryStorageGetUpdateRemove(t *testing.T) {
	t.Parallel()

	storage := dialogue.NewMemoryStorage[convState]()
	ctx := context.Background()
	chatID := types.ChatID(42)

	if _, ok, err := storage.Get(ctx, chatID); err != nil || ok {
		t.Fatalf("Get() on empty storage = (ok=%v, err=%v), want (false, nil)", ok, err)
	}

	want := convState{Step: 1, Name: "Ann"}
	if err := storage.Update(ctx, chatID, want); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, ok, err := storage.Get(ctx, chatID)
	if err != nil || !ok || got != want {
		t.Fatalf("Get() = (%#v, %v, %v), want (%#v, true, nil)", got, ok, err, want)
	}

	if err := storage.Remove(ctx, chatID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok, _ := storage.Get(ctx, chatID); ok {
		t.Fatalf("Get() after Remove() reported ok=true")
	}
}

func TestMemoryStorageRemoveMissingIsNotFound(t *testing.T) {
	t.Parallel()

	storage := dialogue.NewMemoryStorage[convState]()
	err := storage.Remove(context.Background(), types.ChatID(99))
	if !errors.Is(err, dialogue.ErrNotFound) {
		t.Fatalf("Remove() on missing chat error = %v, want ErrNotFound", err)
	}
}

func TestDialogueHandle(t *testing.T) {
	t.Parallel()

	storage := dialogue.Erase[convState](dialogue.NewMemoryStorage[convState]())
	ctx := context.Background()
	d := dialogue.New(storage, types.ChatID(7))

	if _, ok, err := d.Get(ctx); err != nil || ok {
		t.Fatalf("Get() on fresh dialogue = (ok=%v, err=%v), want (false, nil)", ok, err)
	}

	if err := d.Update(ctx, convState{Step: 2}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, ok, err := d.Get(ctx)
	if err != nil || !ok || got.Step != 2 {
		t.Fatalf("Get() = (%#v, %v, %v), want Step=2", got, ok, err)
	}

	if err := d.Exit(ctx); err != nil {
		t.Fatalf("Exit() error = %v", err)
	}
	if _, ok, _ := d.Get(ctx); ok {
		t.Fatalf("Get() after Exit() reported ok=true")
	}
}
