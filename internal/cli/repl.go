package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. App implements it;
// tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Download(ctx context.Context, id string) error
	Export(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Usage(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, help, exit"
	memberHelp = "Available commands: upload <path>, list, search [term], download <id>, export <id>, delete <id>, usage, whoami, logout, help, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit", writing
// prompts and help to out.
//
// File commands require a logged-in user. Handlers report their own
// failures to the user, so their errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	printlnFn := func(args ...any) { fmt.Fprintln(out, args...) }
	for {
		printlnFn(fmt.Sprintf("fortress (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !a.isLoggedIn() {
			if isMemberCommand(cmd) {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))
		case "usage":
			_ = a.Usage(ctx)
		case "upload", "download", "export", "delete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, argName(cmd)))
				continue
			}
			arg := args[0]
			if cmd == "upload" {
				// Paths may contain spaces.
				arg = strings.Join(args, " ")
			}
			_ = dispatchWithArg(ctx, a, cmd, arg)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isMemberCommand(cmd string) bool {
	switch cmd {
	case "logout", "whoami", "l", "list", "search", "usage", "upload", "download", "export", "delete":
		return true
	}
	return false
}

func argName(cmd string) string {
	if cmd == "upload" {
		return "path"
	}
	return "id"
}

func dispatchWithArg(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "upload":
		return a.Upload(ctx, arg)
	case "download":
		return a.Download(ctx, arg)
	case "export":
		return a.Export(ctx, arg)
	default:
		return a.Delete(ctx, arg)
	}
}
