// Command tgconsole is an interactive console for poking a bot from a
// terminal: it prompts for a token (masked, if not already in the
// environment) and then reads one chat id + message pair per line, sending
// each as a plain sendMessage. Grounded on the teacher's terminal
// authenticator (internal/telegram/auth/auth.go): readline for line input,
// golang.org/x/term for the one masked prompt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"tgbotkit"
	"tgbotkit/tgconfig"
)

func main() {
	token := strings.TrimSpace(os.Getenv(tgconfig.EnvToken))
	if token == "" {
		var err error
		token, err = promptToken()
		if err != nil {
			fmt.Fprintln(os.Stderr, "tgconsole:", err)
			os.Exit(1)
		}
	}

	bot := tgbotkit.New(token, "", nil)
	if _, err := bot.GetMe().Send(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "tgconsole: token rejected:", err)
		os.Exit(1)
	}

	rl, err := readline.New("tg> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "tgconsole:", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "connected. enter lines as: <chat_id> <message text>")
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return
			}
			fmt.Fprintln(rl.Stderr(), "tgconsole:", err)
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		chatID, text, ok := splitChatAndText(line)
		if !ok {
			fmt.Fprintln(rl.Stderr(), "tgconsole: expected \"<chat_id> <message text>\"")
			continue
		}
		if _, err := bot.SendMessage(chatID, text).Send(context.Background()); err != nil {
			fmt.Fprintln(rl.Stderr(), "tgconsole: send failed:", err)
		}
	}
}

func splitChatAndText(line string) (int64, string, bool) {
	parts := strings.SplitN(line, " ", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	chatID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return chatID, parts[1], true
}

// promptToken prints a plain prompt and reads the token without echoing it,
// matching the teacher's Password() authenticator method.
func promptToken() (string, error) {
	fmt.Print("Enter bot token: ")
	tokenBytes, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}
