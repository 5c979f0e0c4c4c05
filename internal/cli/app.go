package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fortress/internal/config"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/services"
	"golang.org/x/term"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	files  services.FileService
	log    logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	userName string
}

// NewApp wires the shell to its services. in and out are usually os.Stdin
// and os.Stdout; spinners are shown only when out is a terminal.
func NewApp(c *config.Config, auth services.AuthService, files services.FileService, log logging.Logger, in io.Reader, out io.Writer) *App {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &App{
		config:      c,
		auth:        auth,
		files:       files,
		log:         log,
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return "guest"
	}
	return a.userName
}

// Run restores the device session and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	user, ok, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if ok {
		a.userName = user
		a.log.Debug(ctx, "session restored", "user", user)
	}

	fmt.Fprintln(a.out, "Welcome to Fortress (type 'help' for commands)")
	if ok {
		a.info("logged in as %s", user)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}
