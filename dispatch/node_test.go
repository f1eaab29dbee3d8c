package dispatch

import (
	"context"
	"errors"
	"testing"

	"tgbotkit/types"
)

func textUpdate(text string) types.Update {
	return types.Update{Kind: types.KindMessage, Message: &types.Message{Text: text}}
}

func TestFilterDeclinesAndContinues(t *testing.T) {
	t.Parallel()

	var ran bool
	node := Filter(func(u types.Update) bool { return u.Message.Text == "hi" },
		EndpointNode(func(ctx context.Context, u types.Update, deps *DepMap) error {
			ran = true
			return nil
		}),
	)

	if got := node.walk(context.Background(), textUpdate("bye"), NewDepMap()); got != declined {
		t.Fatalf("walk() = %v, want declined", got)
	}
	if ran {
		t.Fatalf("endpoint ran despite filter mismatch")
	}

	if got := node.walk(context.Background(), textUpdate("hi"), NewDepMap()); got != handled {
		t.Fatalf("walk() = %v, want handled", got)
	}
	if !ran {
		t.Fatalf("endpoint did not run despite filter match")
	}
}

func TestBranchTriesChildrenInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string, match bool) Node {
		return Filter(func(types.Update) bool { return match },
			EndpointNode(func(context.Context, types.Update, *DepMap) error {
				order = append(order, name)
				return nil
			}),
		)
	}

	branch := Branch(mk("first", false), mk("second", true), mk("third", true))
	if got := branch.walk(context.Background(), textUpdate("x"), NewDepMap()); got != handled {
		t.Fatalf("walk() = %v, want handled", got)
	}
	if len(order) != 1 || order[0] != "second" {
		t.Fatalf("ran handlers %v, want only [second]", order)
	}
}

func TestBranchDeclinesWhenAllChildrenDecline(t *testing.T) {
	t.Parallel()

	no := func(types.Update) bool { return false }
	branch := Branch(
		Filter(no, EndpointNode(func(context.Context, types.Update, *DepMap) error { return nil })),
		Filter(no, EndpointNode(func(context.Context, types.Update, *DepMap) error { return nil })),
	)

	if got := branch.walk(context.Background(), textUpdate("x"), NewDepMap()); got != declined {
		t.Fatalf("walk() = %v, want declined", got)
	}
}

func TestFilterMapInsertsDependencyForNext(t *testing.T) {
	t.Parallel()

	type userName string

	node := FilterMap(func(u types.Update) (userName, bool) {
		if u.Message.Text == "" {
			return "", false
		}
		return userName(u.Message.Text), true
	}, EndpointNode(func(ctx context.Context, u types.Update, deps *DepMap) error {
		name := Get[userName](deps)
		if name != "hi" {
			t.Fatalf("Get[userName]() = %q, want %q", name, "hi")
		}
		return nil
	}))

	if got := node.walk(context.Background(), textUpdate("hi"), NewDepMap()); got != handled {
		t.Fatalf("walk() = %v, want handled", got)
	}
	if got := node.walk(context.Background(), textUpdate(""), NewDepMap()); got != declined {
		t.Fatalf("walk() = %v, want declined", got)
	}
}

func TestEndpointNodeReportsErrorToSink(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	var gotErr error

	deps := NewDepMap()
	deps.Insert(errorSink{handle: func(err error) { gotErr = err }})

	node := EndpointNode(func(context.Context, types.Update, *DepMap) error { return wantErr })
	if got := node.walk(context.Background(), textUpdate("x"), deps); got != handled {
		t.Fatalf("walk() = %v, want handled", got)
	}
	if !errors.Is(gotErr, wantErr) {
		t.Fatalf("sink received %v, want %v", gotErr, wantErr)
	}
}

func TestFilterKindDeclaresKindAndFilters(t *testing.T) {
	t.Parallel()

	var ran bool
	node := FilterKind(types.KindMessage, EndpointNode(func(context.Context, types.Update, *DepMap) error {
		ran = true
		return nil
	}))

	if kinds, ok := node.allowedKinds(); !ok || len(kinds) != 1 || kinds[0] != types.KindMessage {
		t.Fatalf("allowedKinds() = %v, %v, want ([KindMessage], true)", kinds, ok)
	}

	if got := node.walk(context.Background(), types.Update{Kind: types.KindCallbackQuery}, NewDepMap()); got != declined {
		t.Fatalf("walk() with mismatched kind = %v, want declined", got)
	}
	if ran {
		t.Fatalf("endpoint ran for a kind FilterKind should have rejected")
	}

	if got := node.walk(context.Background(), textUpdate("hi"), NewDepMap()); got != handled {
		t.Fatalf("walk() with matching kind = %v, want handled", got)
	}
	if !ran {
		t.Fatalf("endpoint did not run for a kind FilterKind should have accepted")
	}
}

func TestBranchAllowedKindsUnionsChildrenOrFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	precise := Branch(
		FilterKind(types.KindMessage, EndpointNode(func(context.Context, types.Update, *DepMap) error { return nil })),
		FilterKind(types.KindCallbackQuery, EndpointNode(func(context.Context, types.Update, *DepMap) error { return nil })),
	)
	kinds, ok := precise.allowedKinds()
	if !ok {
		t.Fatalf("allowedKinds() ok = false, want true when every child declares its kind")
	}
	seen := map[types.Kind]bool{}
	for _, k := range kinds {
		seen[k] = true
	}
	if !seen[types.KindMessage] || !seen[types.KindCallbackQuery] || len(kinds) != 2 {
		t.Fatalf("allowedKinds() = %v, want exactly [KindMessage, KindCallbackQuery]", kinds)
	}

	mixed := Branch(
		FilterKind(types.KindMessage, EndpointNode(func(context.Context, types.Update, *DepMap) error { return nil })),
		Filter(func(types.Update) bool { return true }, EndpointNode(func(context.Context, types.Update, *DepMap) error { return nil })),
	)
	if _, ok := mixed.allowedKinds(); ok {
		t.Fatalf("allowedKinds() ok = true, want false when one child is an undeclared predicate")
	}
}

func TestChainAlwaysProceeds(t *testing.T) {
	t.Parallel()

	var sideEffect, nextRan bool
	logging := Filter(func(types.Update) bool { return false },
		EndpointNode(func(context.Context, types.Update, *DepMap) error { sideEffect = true; return nil }))
	next := EndpointNode(func(context.Context, types.Update, *DepMap) error { nextRan = true; return nil })

	chain := Chain(logging, next)
	if got := chain.walk(context.Background(), textUpdate("x"), NewDepMap()); got != handled {
		t.Fatalf("walk() = %v, want handled", got)
	}
	if sideEffect {
		t.Fatalf("logging node's own endpoint ran despite its filter declining")
	}
	if !nextRan {
		t.Fatalf("next did not run after chained node")
	}
}
