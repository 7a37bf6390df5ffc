package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) exec(_ context.Context, cmd string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(cmd+" "+strings.Join(args, " ")))
	return f.err
}

// capturePrintln swaps printlnFn for the duration of the test.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var out []string
	old := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = old })
	return &out
}

func run(f *fakeExec, input string) {
	runREPL(context.Background(), f, func() string { return "guest" }, bufio.NewReader(strings.NewReader(input)))
}

func TestREPL_DispatchesPublicCommands(t *testing.T) {
	capturePrintln(t)
	f := &fakeExec{}

	run(f, "login\n\n  whoami  \nsignup\n")

	if diff := cmp.Diff([]string{"login", "whoami", "signup"}, f.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestREPL_GatesAccountCommands(t *testing.T) {
	out := capturePrintln(t)
	f := &fakeExec{}

	run(f, "journal 2\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, *out, "Please log in first (type 'login' or 'signup').")

	f.loggedIn = true
	run(f, "journal 2\nposts 1 anxiety\n")
	assert.Equal(t, []string{"journal 2", "posts 1 anxiety"}, f.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	out := capturePrintln(t)
	f := &fakeExec{loggedIn: true}

	run(f, "dance\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, *out, "Unknown command: dance")
}

func TestREPL_HelpDependsOnSession(t *testing.T) {
	out := capturePrintln(t)
	run(&fakeExec{}, "help\n")
	assert.Contains(t, *out, guestHelp)

	out = capturePrintln(t)
	run(&fakeExec{loggedIn: true}, "help\n")
	assert.Contains(t, *out, userHelp)
}

func TestREPL_PrintsErrorsAndContinues(t *testing.T) {
	out := capturePrintln(t)
	f := &fakeExec{err: errors.New("Invalid credentials")}

	run(f, "login\nwhoami\n")

	assert.Len(t, f.calls, 2)
	assert.Contains(t, *out, "Error: Invalid credentials")
}

func TestREPL_ExitStopsReading(t *testing.T) {
	out := capturePrintln(t)
	f := &fakeExec{}

	run(f, "exit\nlogin\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "mh guest>")
}

func TestREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrintln(t)
	f := &fakeExec{}

	run(f, "logout")

	assert.Equal(t, []string{"logout"}, f.calls)
}

func TestREPL_CapitalizesErrors(t *testing.T) {
	out := capturePrintln(t)
	f := &fakeExec{err: errPasswordMismatch}

	run(f, "signup\n")

	assert.Contains(t, *out, "Error: Passwords do not match")
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "Please fill in all fields", sentence(errEmptyFields.Error()))
	assert.Equal(t, "Invalid credentials", sentence("Invalid credentials"))
	assert.Equal(t, "", sentence(""))
}
