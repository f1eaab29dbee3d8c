// Package updates supplies the two ways this module receives Update
// values from the remote API: a long-polling Listener modeled on the
// teacher's monitorLoop (a ticking, context-cancelable loop with graceful
// drain on stop, internal/infra/telegram/connection/con_manager.go) and a
// webhook Listener built on stdlib net/http.
package updates

import (
	"context"

	"tgbotkit/types"
)

// Listener delivers Update values on Updates until ctx is canceled or Stop
// is called, then closes Updates after any in-flight delivery completes.
// Errors encountered fetching or decoding updates (a failed getUpdates call,
// a malformed webhook payload) are reported on Errs rather than swallowed, so
// the caller can decide whether to keep going — both Updates and Errs are
// closed once the listener has fully stopped.
type Listener interface {
	// Updates returns the channel updates are delivered on. It is closed
	// once the listener has fully stopped.
	Updates() <-chan types.Update
	// Errs returns the channel non-fatal errors are reported on. It is
	// closed once the listener has fully stopped. A full buffer drops the
	// oldest-pending error report rather than blocking delivery of updates.
	Errs() <-chan error
	// Run starts delivering updates; it blocks until ctx is canceled or Stop
	// is called.
	Run(ctx context.Context) error
	// Stop requests a graceful shutdown and waits for Run to return.
	Stop()
}
