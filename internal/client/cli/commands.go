package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// exec runs one command. The REPL has already checked that cmd exists and
// that account commands have a session.
func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.signup(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		a.logout()
		return nil
	case "whoami":
		a.whoami()
		return nil

	case "journal":
		return a.listJournal(ctx, args)
	case "write":
		return a.writeJournal(ctx)
	case "mood":
		return a.mood(ctx, args)
	case "meditations":
		return a.meditations(ctx, args)
	case "sleep":
		return a.sleep(ctx, args)

	case "chat":
		return a.chat(ctx)
	case "reset-chat":
		return a.resetChat(ctx)

	case "posts":
		return a.listPosts(ctx, args)
	case "post":
		return a.showPost(ctx, args)
	case "share":
		return a.sharePost(ctx)
	case "like":
		return a.likePost(ctx, args)
	case "comment":
		return a.commentPost(ctx, args)

	case "reframe":
		return a.reframe(ctx)
	case "analyze":
		return a.analyze(ctx)
	case "challenges":
		return a.challenges(ctx)
	case "complete":
		return a.completeChallenge(ctx, args)

	case "therapists":
		return a.therapists(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "appointments":
		return a.appointments(ctx)
	case "reschedule":
		return a.reschedule(ctx, args)
	case "cancel":
		return a.cancelAppointment(ctx, args)
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

// prompt reads one trimmed line after printing label.
func (a *App) prompt(label string) (string, error) {
	return GetSimpleText(a.reader, label, a.out)
}

// confirm asks a yes/no question; anything but y/yes is no.
func (a *App) confirm(label string) (bool, error) {
	s, err := a.prompt(label + " [y/N]")
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// argID returns args[0] or an error naming the expected argument.
func argID(args []string, usage string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return args[0], nil
}

// argPage parses an optional 1-based page number.
func argPage(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 1, args, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 1, args, nil
	}
	if n < 1 {
		return 0, nil, fmt.Errorf("page must be a positive number")
	}
	return n, args[1:], nil
}
