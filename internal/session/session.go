// Package session tracks which user is logged in on this device.
//
// The marker is a single "session:active" key holding the username. There
// is no expiry. Callers read it once and pass the username explicitly to
// everything that needs it.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/storage"
)

// Key is where the active username is stored.
const Key = "session:active"

type Manager interface {
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	// Current returns the active username and whether one is set.
	Current(ctx context.Context) (string, bool, error)
}

type manager struct {
	repo storage.Repository
}

func NewManager(repo storage.Repository) Manager {
	return &manager{repo: repo}
}

func (m *manager) Login(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", common.ErrValidation)
	}
	if err := m.repo.Set(ctx, Key, []byte(username)); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (m *manager) Logout(ctx context.Context) error {
	if err := m.repo.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *manager) Current(ctx context.Context) (string, bool, error) {
	v, err := m.repo.Get(ctx, Key)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}
