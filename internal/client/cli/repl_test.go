package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	loggedIn bool
	calls    []string
	showArg  string
	verify   string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }
func (s *stubExec) Login(ctx context.Context) error {
	s.calls = append(s.calls, "login")
	return nil
}
func (s *stubExec) Logout(ctx context.Context) error {
	s.calls = append(s.calls, "logout")
	return nil
}
func (s *stubExec) GenerateReport(ctx context.Context) error {
	s.calls = append(s.calls, "generate")
	return nil
}
func (s *stubExec) History(ctx context.Context) error {
	s.calls = append(s.calls, "history")
	return nil
}
func (s *stubExec) Show(ctx context.Context, arg string) error {
	s.calls = append(s.calls, "show")
	s.showArg = arg
	return nil
}
func (s *stubExec) Balance(ctx context.Context) error {
	s.calls = append(s.calls, "balance")
	return nil
}
func (s *stubExec) Upgrade(ctx context.Context) error {
	s.calls = append(s.calls, "upgrade")
	return nil
}
func (s *stubExec) Verify(ctx context.Context, arg string) error {
	s.calls = append(s.calls, "verify")
	s.verify = arg
	return nil
}

func scannerFromLines(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)
	e := &stubExec{loggedIn: true}

	runREPL(context.Background(), e, func() string { return "user-1" },
		scannerFromLines("generate", "history", "show 2", "balance", "upgrade", "verify cs_42", "logout", "exit"))

	assert.Equal(t, []string{"generate", "history", "show", "balance", "upgrade", "verify", "logout"}, e.calls)
	assert.Equal(t, "2", e.showArg)
	assert.Equal(t, "cs_42", e.verify)
}

func TestRunREPL_ShowWithoutArgPrintsUsage(t *testing.T) {
	out := captureOutput(t)
	e := &stubExec{loggedIn: true}

	runREPL(context.Background(), e, func() string { return "" },
		scannerFromLines("show", "exit"))

	assert.Empty(t, e.calls)
	assert.True(t, outputContains(*out, "Usage: show <n>"))
}

func TestRunREPL_VerifyWithoutArgStillDispatches(t *testing.T) {
	captureOutput(t)
	e := &stubExec{loggedIn: true}

	runREPL(context.Background(), e, func() string { return "" },
		scannerFromLines("verify", "exit"))

	assert.Equal(t, []string{"verify"}, e.calls)
	assert.Equal(t, "", e.verify)
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	out := captureOutput(t)
	e := &stubExec{loggedIn: false}
	runREPL(context.Background(), e, func() string { return "" },
		scannerFromLines("help", "exit"))
	assert.True(t, outputContains(*out, "login, exit"))

	out2 := captureOutput(t)
	e.loggedIn = true
	runREPL(context.Background(), e, func() string { return "" },
		scannerFromLines("help", "exit"))
	assert.True(t, outputContains(*out2, "generate"))
}

func TestRunREPL_UnknownAndEmptyLines(t *testing.T) {
	out := captureOutput(t)
	e := &stubExec{}

	runREPL(context.Background(), e, func() string { return "" },
		scannerFromLines("", "frobnicate", "quit"))

	assert.Empty(t, e.calls)
	assert.True(t, outputContains(*out, "Unknown command:"))
	assert.True(t, outputContains(*out, "Bye!"))
}
