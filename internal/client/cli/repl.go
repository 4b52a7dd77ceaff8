package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	GenerateReport(ctx context.Context) error
	History(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Balance(ctx context.Context) error
	Upgrade(ctx context.Context) error
	Verify(ctx context.Context, arg string) error
}

// runREPL starts a simple read–eval–print loop for the DeepBrief CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              — show available commands
//	  - login             — paste a session token
//	  - exit | quit       — leave the program
//
//	Logged in:
//	  - help              — show available commands
//	  - generate          — request a research report
//	  - (h)istory         — refresh and list past reports
//	  - show <n>          — open entry n from the last listing
//	  - balance           — refresh and print the credit balance
//	  - upgrade           — start a checkout session
//	  - verify <session>  — verify a completed payment
//	  - logout            — log out and clear the local cache
//	  - exit | quit       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("db> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: generate, (h)istory, show <n>, balance, upgrade, verify <session_id>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "generate":
			_ = a.GenerateReport(ctx)

		case "h", "history":
			_ = a.History(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <n>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "balance":
			_ = a.Balance(ctx)

		case "upgrade":
			_ = a.Upgrade(ctx)

		case "verify":
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			_ = a.Verify(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
