// Command replbot demonstrates command-based dispatch: /start, /help, and
// /age <name> <years>, mirroring teloxide's examples/command_repl.rs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"tgbotkit"
	"tgbotkit/command"
	"tgbotkit/replbot"
	"tgbotkit/tgconfig"
	"tgbotkit/tglog"
	"tgbotkit/types"
)

type startArgs struct{}

type helpArgs struct{}

type ageArgs struct {
	Name  string
	Years int
}

// Commands enumerates every command this bot understands; each field is a
// variant whose own fields are that command's parsed arguments.
type Commands struct {
	Start startArgs `command:"description=start the bot"`
	Help  helpArgs  `command:"description=show this help text"`
	Age   ageArgs   `command:"description=tell someone their age next year,sep= "`
}

func main() {
	log_ := flag.String("log", "info", "log level: debug, info, warn, error")
	env := flag.String("env", "", "path to a .env file (optional)")
	flag.Parse()

	tglog.Init(*log_)

	if err := tgconfig.Load(*env); err != nil {
		fmt.Fprintln(os.Stderr, "replbot:", err)
		os.Exit(1)
	}

	bot, err := tgbotkit.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "replbot:", err)
		os.Exit(1)
	}

	desc, err := command.Describe(Commands{}, "/", command.RenameSnake)
	if err != nil {
		fmt.Fprintln(os.Stderr, "replbot:", err)
		os.Exit(1)
	}

	me, err := bot.GetMe().Send(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "replbot: GetMe:", err)
		os.Exit(1)
	}

	handler := func(ctx context.Context, bot tgbotkit.Bot, msg types.Message, cmd any) error {
		var reply string
		switch c := cmd.(type) {
		case *startArgs:
			reply = "pong"
		case *helpArgs:
			reply = strings.Join(desc.Descriptions(), "\n")
		case *ageArgs:
			reply = fmt.Sprintf("%s will be %d next year", c.Name, c.Years+1)
		default:
			reply = strings.Join(desc.Descriptions(), "\n")
		}
		_, err := bot.Reply(msg, reply).Send(ctx)
		return err
	}

	if err := replbot.RunCommands(context.Background(), bot, desc, me.Username, handler); err != nil {
		fmt.Fprintln(os.Stderr, "replbot:", err)
		os.Exit(1)
	}
}
