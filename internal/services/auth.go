package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/credentials"
	"github.com/dmitrijs2005/fortress/internal/logging"
	"github.com/dmitrijs2005/fortress/internal/session"
)

// AuthService registers accounts and manages the device session.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	// Login verifies the password and, on success, makes username the
	// active session.
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, bool, error)
}

type authService struct {
	creds   credentials.Store
	session session.Manager
	log     logging.Logger
}

func NewAuthService(creds credentials.Store, sess session.Manager, log logging.Logger) AuthService {
	return &authService{creds: creds, session: sess, log: log}
}

func validateCredentials(username string, password []byte) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, username string, password []byte) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	if err := s.creds.Register(ctx, username, password); err != nil {
		s.log.Warn(ctx, "registration failed", "user", username, "error", err)
		return err
	}
	s.log.Info(ctx, "user registered", "user", username)
	return nil
}

func (s *authService) Login(ctx context.Context, username string, password []byte) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	if err := s.creds.Verify(ctx, username, password); err != nil {
		s.log.Warn(ctx, "login failed", "user", username, "error", err)
		return err
	}
	if err := s.session.Login(ctx, username); err != nil {
		return err
	}
	s.log.Info(ctx, "user logged in", "user", username)
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "user logged out")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (string, bool, error) {
	return s.session.Current(ctx)
}
