// Package credentials registers users and verifies their passwords.
//
// Each user has one record under "credential:<username>" holding a random
// 16-byte salt and the PBKDF2-SHA256 hash of the password, both hex encoded.
// Records are created once and never overwritten.
package credentials

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fortress/internal/codec"
	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/cryptox"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/storage"
)

const keyPrefix = "credential:"

// Key returns the storage key of username's credential record.
func Key(username string) string {
	return keyPrefix + username
}

type Store interface {
	Register(ctx context.Context, username string, password []byte) error
	Verify(ctx context.Context, username string, password []byte) error
}

type store struct {
	repo       storage.Repository
	iterations int
}

// NewStore returns a Store deriving new hashes with the given PBKDF2
// iteration count. Zero selects cryptox.DefaultIterations. Verification
// always uses the count stored with the record.
func NewStore(repo storage.Repository, iterations int) Store {
	if iterations <= 0 {
		iterations = cryptox.DefaultIterations
	}
	return &store{repo: repo, iterations: iterations}
}

// Register creates the credential record for username. It fails with
// common.ErrDuplicateUser if one already exists.
func (s *store) Register(ctx context.Context, username string, password []byte) error {
	key := Key(username)

	// Skip the expensive derivation when the name is obviously taken.
	if _, err := s.repo.Get(ctx, key); err == nil {
		return common.ErrDuplicateUser
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("lookup credential: %w", err)
	}

	salt := cryptox.GenerateSalt()
	hash := cryptox.DeriveHash(password, salt, s.iterations)

	rec, err := json.Marshal(models.Credential{
		Salt:       codec.EncodeHex(salt),
		Hash:       codec.EncodeHex(hash),
		Iterations: s.iterations,
	})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	if err := s.repo.Create(ctx, key, rec); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return common.ErrDuplicateUser
		}
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Verify recomputes the hash of password with the stored salt and iteration
// count and compares it in constant time.
func (s *store) Verify(ctx context.Context, username string, password []byte) error {
	raw, err := s.repo.Get(ctx, Key(username))
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup credential: %w", err)
	}

	var rec models.Credential
	if err := json.Unmarshal(raw, &rec); err != nil {
		return fmt.Errorf("%w: credential for %q: %v", common.ErrCorruptStore, username, err)
	}
	salt, err := codec.DecodeHex(rec.Salt)
	if err != nil {
		return fmt.Errorf("%w: credential salt: %v", common.ErrCorruptStore, err)
	}
	stored, err := codec.DecodeHex(rec.Hash)
	if err != nil {
		return fmt.Errorf("%w: credential hash: %v", common.ErrCorruptStore, err)
	}

	iterations := rec.Iterations
	if iterations <= 0 {
		iterations = cryptox.DefaultIterations
	}

	candidate := cryptox.DeriveHash(password, salt, iterations)
	defer common.WipeByteArray(candidate)

	if subtle.ConstantTimeCompare(stored, candidate) == 0 {
		return common.ErrInvalidCredentials
	}
	return nil
}
