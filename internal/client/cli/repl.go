package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	exec(ctx context.Context, cmd string, args []string) error
}

// publicCommands may run without a session.
var publicCommands = commandSet("signup", "login", "logout", "whoami")

// accountCommands need an authenticated session.
var accountCommands = commandSet(
	"journal", "write", "mood", "meditations",
	"chat", "reset-chat",
	"posts", "post", "share", "like", "comment",
	"reframe", "analyze", "challenges", "complete",
	"sleep",
	"therapists", "book", "appointments", "reschedule", "cancel",
)

func commandSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

const (
	guestHelp = "Available commands: signup, login, whoami, exit"
	userHelp  = "Available commands:\n" +
		"  whoami, logout, exit\n" +
		"  journal [page], write, mood [feeling], meditations [refresh]\n" +
		"  chat, reset-chat\n" +
		"  posts [page] [category], post <id>, share, like <id>, comment <id>\n" +
		"  reframe, analyze, challenges, complete <id>\n" +
		"  sleep [add | update <id> | rm <id>]\n" +
		"  therapists [specialty], book <therapist id>, appointments, reschedule <id>, cancel <id>"
)

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it to a. The prompt shows the current status (from statusFn).
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Account commands are refused while logged out. Errors returned by
// handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mh %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch {
		case cmd == "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue
		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return
		case !publicCommands[cmd] && !accountCommands[cmd]:
			printlnFn("Unknown command:", cmd)
			continue
		case accountCommands[cmd] && !a.isLoggedIn():
			printlnFn("Please log in first (type 'login' or 'signup').")
			continue
		}

		if err := a.exec(ctx, cmd, args); err != nil {
			printlnFn("Error:", sentence(err.Error()))
		}
	}
}

// sentence upper-cases the first letter of msg for display.
func sentence(msg string) string {
	r, n := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[n:]
}
