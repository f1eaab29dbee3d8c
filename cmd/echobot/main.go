// Command echobot is the smallest possible tgbotkit bot: it replies to every
// text message with the same text, mirroring teloxide's examples/echo.rs and
// wired with this module's own bootstrap idiom (flag + tgconfig + tglog).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tgbotkit"
	"tgbotkit/adaptors"
	"tgbotkit/replbot"
	"tgbotkit/tgconfig"
	"tgbotkit/tglog"
	"tgbotkit/types"
)

func main() {
	log_ := flag.String("log", "info", "log level: debug, info, warn, error")
	env := flag.String("env", "", "path to a .env file (optional)")
	flag.Parse()

	tglog.Init(*log_)

	if err := tgconfig.Load(*env); err != nil {
		fmt.Fprintln(os.Stderr, "echobot:", err)
		os.Exit(1)
	}

	bot, err := tgbotkit.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "echobot:", err)
		os.Exit(1)
	}
	bot = adaptors.Cache(bot)

	if err := replbot.Run(context.Background(), bot, func(ctx context.Context, bot tgbotkit.Bot, msg types.Message) error {
		if msg.Text == "" {
			return nil
		}
		_, err := bot.Reply(msg, msg.Text).Send(ctx)
		return err
	}); err != nil {
		fmt.Fprintln(os.Stderr, "echobot:", err)
		os.Exit(1)
	}
}
