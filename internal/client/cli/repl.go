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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context) error
	Detail(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Enqueue(ctx context.Context, args []string) error
	ProcessQueue(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Payment(ctx context.Context) error
	PaymentStatus(ctx context.Context) error
	Open(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the MaterialHub CLI.
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
//	Always:
//	  - help                — show available commands
//	  - list [page]         — show a catalog page
//	  - search <terms>      — search the catalog
//	  - filter              — set catalog filters interactively
//	  - show <id>           — show one material
//	  - open <path>         — navigate to a screen path
//	  - exit | quit         — leave the program
//
//	Not logged in:
//	  - register            — create an account
//	  - login               — authenticate
//
//	Logged in:
//	  - favorite <id>       — toggle a material's favorite flag
//	  - download <id>       — record a download and print the URL
//	  - upload <file>       — upload a file with live progress
//	  - queue <file>        — queue a file for later upload
//	  - process             — upload everything queued, with retries
//	  - profile             — show the profile
//	  - edit                — edit the profile
//	  - passwd              — change the password
//	  - buy                 — purchase a membership
//	  - order               — poll the active payment order
//	  - logout              — log out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mhub %s> ", statusFn()))
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
				printlnFn("Available commands: (l)ist, search, filter, show, favorite, download, upload, queue, process, profile, edit, passwd, buy, order, open, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, search, filter, show, open, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "filter":
			_ = a.Filter(ctx)

		case "show":
			_ = a.Detail(ctx, args)

		case "favorite":
			_ = a.Favorite(ctx, args)

		case "download":
			_ = a.Download(ctx, args)

		case "upload":
			_ = a.Upload(ctx, args)

		case "queue":
			_ = a.Enqueue(ctx, args)

		case "process":
			_ = a.ProcessQueue(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "buy":
			_ = a.Payment(ctx)

		case "order":
			_ = a.PaymentStatus(ctx)

		case "open":
			_ = a.Open(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
