package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/fortress/internal/common"
)

// getSimpleText, getPassword and confirm are indirections over the input
// helpers so tests can script answers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// Register prompts for a username and the password twice, then creates the
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	again, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(password, again) {
		err := fmt.Errorf("%w: passwords do not match", common.ErrValidation)
		a.failure(err)
		return err
	}

	err = a.busy("Deriving key...", func() error {
		return a.auth.Register(ctx, userName, password)
	})
	if err != nil {
		a.failure(err)
		return err
	}

	a.success("Account %s created, you can now log in", userName)
	return nil
}

// Login prompts for credentials and makes the user the active session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.busy("Checking credentials...", func() error {
		return a.auth.Login(ctx, userName, password)
	})
	if err != nil {
		a.failure(err)
		return err
	}

	a.userName = userName
	a.success("Welcome, %s", userName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.failure(err)
		return err
	}
	a.userName = ""
	a.success("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	a.info("logged in as %s", a.userName)
	return nil
}
