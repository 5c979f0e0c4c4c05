package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/filex"
	"github.com/fatih/color"
)

// describe turns an error into the line shown to the user. Unknown users and
// wrong passwords read the same so names cannot be probed.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrDuplicateUser):
		return "that username is already taken"
	case errors.Is(err, common.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, common.ErrFileTooLarge):
		return "file is too large"
	case errors.Is(err, common.ErrQuotaExceeded):
		return "not enough space left in your vault"
	case errors.Is(err, common.ErrAlreadyExists):
		return "a file with that id is already stored"
	case errors.Is(err, common.ErrNotFound):
		return "no such file"
	case errors.Is(err, common.ErrDecrypt):
		return "file could not be decrypted; it may be corrupted"
	case errors.Is(err, common.ErrCorruptStore):
		return "stored data is unreadable"
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.Is(err, filex.ErrBadName):
		return "file name cannot be used on this system"
	default:
		return "unexpected error: " + err.Error()
	}
}

func (a *App) success(format string, args ...any) {
	fmt.Fprintln(a.out, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func (a *App) failure(err error) {
	fmt.Fprintln(a.out, color.RedString("✗")+" "+describe(err))
}

func (a *App) info(format string, args ...any) {
	fmt.Fprintln(a.out, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}

// busy shows a spinner with msg while fn runs, when attached to a terminal.
func (a *App) busy(msg string, fn func() error) error {
	if !a.interactive {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.out))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()
	return fn()
}

func writeTable(w io.Writer, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}
