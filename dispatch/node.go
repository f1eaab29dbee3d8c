package dispatch

import (
	"context"

	"tgbotkit/types"
)

// outcome reports whether a node's walk produced a match. A non-matching
// node lets a parent branch() try the next sibling.
type outcome int

const (
	declined outcome = iota
	handled
)

// Node is one entry in the handler DAG: filter, filter_map, branch,
// endpoint, and chain all produce a Node, and Node composes with Then to
// build longer chains, mirroring spec.md §4.7's five combinators.
//
// kinds records which update kinds this node (and everything reachable
// below it) could possibly act on, so Dispatcher can compute a precise
// hint_allowed_updates for the listener (spec.md §4.7) instead of always
// subscribing to every kind. nil means "not declared" — a node built from
// an opaque predicate (Filter, FilterMap) or a bare endpoint can't say what
// kind it needs, so it's treated as "could be any kind" and poisons the
// union for every ancestor above it. Only FilterKind declares a kind.
type Node struct {
	run   func(ctx context.Context, u types.Update, deps *DepMap) outcome
	kinds []types.Kind
}

func (n Node) walk(ctx context.Context, u types.Update, deps *DepMap) outcome {
	if n.run == nil {
		return declined
	}
	return n.run(ctx, u, deps)
}

// allowedKinds reports the update kinds reachable under n, and whether that
// set is precise. ok is false if any reachable node didn't declare its
// kinds, in which case kinds is nil and callers should fall back to "every
// kind" rather than trust a partial list.
func (n Node) allowedKinds() (kinds []types.Kind, ok bool) {
	if n.kinds == nil {
		return nil, false
	}
	return n.kinds, true
}

func dedupeKinds(ks []types.Kind) []types.Kind {
	seen := make(map[types.Kind]bool, len(ks))
	out := make([]types.Kind, 0, len(ks))
	for _, k := range ks {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Filter continues to next only if pred(u) is true. pred is an opaque
// predicate, so Filter can't declare which kinds it needs — it inherits
// next's declaration as-is.
func Filter(pred func(types.Update) bool, next Node) Node {
	return Node{
		kinds: next.kinds,
		run: func(ctx context.Context, u types.Update, deps *DepMap) outcome {
			if !pred(u) {
				return declined
			}
			return next.walk(ctx, u, deps)
		},
	}
}

// FilterKind continues to next only if u.Kind == kind, and declares that
// restriction — unlike Filter's opaque predicate, this lets Dispatcher
// compute an exact hint_allowed_updates without falling back to "every
// kind" for this branch of the DAG.
func FilterKind(kind types.Kind, next Node) Node {
	return Node{
		kinds: []types.Kind{kind},
		run: func(ctx context.Context, u types.Update, deps *DepMap) outcome {
			if u.Kind != kind {
				return declined
			}
			return next.walk(ctx, u, deps)
		},
	}
}

// FilterMap runs f(u); if it returns (v, true), v is inserted into deps (by
// its own type, see DepMap.Insert) before continuing to next. If f returns
// (_, false), the node declines without running next. Like Filter, f is
// opaque, so FilterMap inherits next's kind declaration unchanged.
func FilterMap[T any](f func(types.Update) (T, bool), next Node) Node {
	return Node{
		kinds: next.kinds,
		run: func(ctx context.Context, u types.Update, deps *DepMap) outcome {
			v, ok := f(u)
			if !ok {
				return declined
			}
			deps = deps.clone()
			deps.Insert(v)
			return next.walk(ctx, u, deps)
		},
	}
}

// Branch tries each child in order; the first that matches stops the walk.
// If every child declines, Branch itself declines. Its declared kinds are
// the union of every child's, or unknown if any child's is.
func Branch(children ...Node) Node {
	var union []types.Kind
	for _, c := range children {
		ck, ok := c.allowedKinds()
		if !ok {
			union = nil
			break
		}
		union = append(union, ck...)
	}
	if union != nil {
		union = dedupeKinds(union)
	}

	return Node{
		kinds: union,
		run: func(ctx context.Context, u types.Update, deps *DepMap) outcome {
			for _, child := range children {
				if child.walk(ctx, u, deps) == handled {
					return handled
				}
			}
			return declined
		},
	}
}

// Endpoint is a terminal node: fn is called with deps and always matches.
type Endpoint func(ctx context.Context, u types.Update, deps *DepMap) error

// EndpointNode wraps fn as a terminal Node. Errors are forwarded to the
// dispatcher's error handler, configured via Dispatcher's HandleError. A
// bare endpoint declares no kind restriction of its own — wrap it in
// FilterKind if it only ever acts on one kind.
func EndpointNode(fn Endpoint) Node {
	return Node{run: func(ctx context.Context, u types.Update, deps *DepMap) outcome {
		if err := fn(ctx, u, deps); err != nil {
			if h, ok := TryGet[errorSink](deps); ok {
				h.handle(err)
			}
		}
		return handled
	}}
}

// Chain runs this node's side effects then always proceeds to next,
// regardless of this node's own declined/handled outcome — useful for
// middleware-style nodes (e.g. logging) that shouldn't gate the walk. Its
// declared kinds are the union of both this and next's, since either may
// act on the update.
func Chain(this, next Node) Node {
	var union []types.Kind
	thisKinds, thisOK := this.allowedKinds()
	nextKinds, nextOK := next.allowedKinds()
	if thisOK && nextOK {
		union = dedupeKinds(append(append([]types.Kind{}, thisKinds...), nextKinds...))
	}

	return Node{
		kinds: union,
		run: func(ctx context.Context, u types.Update, deps *DepMap) outcome {
			this.walk(ctx, u, deps)
			return next.walk(ctx, u, deps)
		},
	}
}

// errorSink is the DepMap-carried hook EndpointNode reports endpoint errors
// through; Dispatcher inserts one per update before starting the walk.
type errorSink struct {
	handle func(error)
}
