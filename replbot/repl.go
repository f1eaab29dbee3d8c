// Package replbot is the one-call helper that wires a long-polling
// listener, a dispatcher, and a single message handler together for the
// common "one endpoint per update" case, mirroring teloxide's repl/
// commands_repl helpers (repls/repl.rs, repls/commands_repl.rs).
package replbot

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tgbotkit"
	"tgbotkit/command"
	"tgbotkit/dispatch"
	"tgbotkit/tglog"
	"tgbotkit/types"
	"tgbotkit/updates"
)

// Handler processes one Message. Returning an error logs it and continues;
// it never stops the REPL.
type Handler func(ctx context.Context, bot tgbotkit.Bot, msg types.Message) error

// Run starts a long-polling listener against bot and calls handler for
// every incoming message update, serialized per chat, until a SIGINT/SIGTERM
// is received or ctx is canceled. It blocks until shutdown completes —
// matching the "Caution: this function blocks and handles Ctrl-C itself"
// contract teloxide's repl() documents.
func Run(ctx context.Context, bot tgbotkit.Bot, handler Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := dispatch.FilterKind(types.KindMessage,
		dispatch.EndpointNode(func(ctx context.Context, u types.Update, _ *dispatch.DepMap) error {
			return handler(ctx, bot, *u.Message)
		}),
	)

	d := dispatch.New(root, 16)

	cfg := updates.LongPollConfig{}
	if kinds, ok := d.AllowedUpdateKinds(); ok {
		cfg.AllowedUpdates = kinds
	}
	listener := updates.NewLongPoll(bot, cfg)

	return d.Run(ctx, listener)
}

// RunCommands is like Run, but parses each message's text as a command via
// desc first, calling handler only when parsing succeeds; parse failures are
// logged and otherwise ignored, mirroring commands_repl's "silently skip
// non-commands, log malformed commands" behavior.
func RunCommands(ctx context.Context, bot tgbotkit.Bot, desc *command.Descriptor, botUsername string, handler func(ctx context.Context, bot tgbotkit.Bot, msg types.Message, cmd any) error) error {
	wrapped := func(ctx context.Context, bot tgbotkit.Bot, msg types.Message) error {
		cmd, parseErr := desc.Parse(msg.Text, botUsername)
		if parseErr != nil {
			if parseErr.Kind != command.UnknownCommand {
				tglog.Debug("replbot: command parse failed", zap.String("text", msg.Text), zap.Error(parseErr))
			}
			return nil
		}
		return handler(ctx, bot, msg, cmd)
	}
	return Run(ctx, bot, wrapped)
}
