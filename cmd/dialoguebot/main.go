// Command dialoguebot is a two-step conversation: it asks for a name, then
// an age, then reports both back — mirroring teloxide's examples/dialogue.rs,
// built on package dialogue's in-memory storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tgbotkit"
	"tgbotkit/dialogue"
	"tgbotkit/replbot"
	"tgbotkit/tgconfig"
	"tgbotkit/tglog"
	"tgbotkit/types"
)

// step enumerates this dialogue's states, mirroring teloxide's State enum
// for the same example.
type step int

const (
	stepStart step = iota
	stepReceiveName
	stepReceiveAge
)

type state struct {
	step step
	name string
}

func main() {
	log_ := flag.String("log", "info", "log level: debug, info, warn, error")
	env := flag.String("env", "", "path to a .env file (optional)")
	flag.Parse()

	tglog.Init(*log_)

	if err := tgconfig.Load(*env); err != nil {
		fmt.Fprintln(os.Stderr, "dialoguebot:", err)
		os.Exit(1)
	}

	bot, err := tgbotkit.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dialoguebot:", err)
		os.Exit(1)
	}

	storage := dialogue.Erase[state](dialogue.NewMemoryStorage[state]())

	handler := func(ctx context.Context, bot tgbotkit.Bot, msg types.Message) error {
		d := dialogue.New(storage, msg.Chat.ID)
		cur, ok, err := d.Get(ctx)
		if err != nil {
			return err
		}
		if !ok {
			cur = state{step: stepStart}
		}

		var reply string
		switch cur.step {
		case stepStart:
			reply = "Let's start! What's your name?"
			cur.step = stepReceiveName
			err = d.Update(ctx, cur)
		case stepReceiveName:
			name := strings.TrimSpace(msg.Text)
			if name == "" {
				reply = "Please send a non-empty name."
				break
			}
			cur.name = name
			cur.step = stepReceiveAge
			reply = fmt.Sprintf("Hi, %s! How old are you?", cur.name)
			err = d.Update(ctx, cur)
		case stepReceiveAge:
			age, convErr := strconv.Atoi(strings.TrimSpace(msg.Text))
			if convErr != nil {
				reply = "Please send your age as a number."
				break
			}
			reply = fmt.Sprintf("%s, %d years old — nice to meet you!", cur.name, age)
			err = d.Exit(ctx)
		}
		if err != nil {
			return err
		}

		_, sendErr := bot.Reply(msg, reply).Send(ctx)
		return sendErr
	}

	if err := replbot.Run(context.Background(), bot, handler); err != nil {
		fmt.Fprintln(os.Stderr, "dialoguebot:", err)
		os.Exit(1)
	}
}
