package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/fortress/internal/common"
	"github.com/dmitrijs2005/fortress/internal/models"
	"github.com/dmitrijs2005/fortress/internal/storage"
)

// DefaultQuota is the per-user limit on the serialized vault, 5 MiB.
const DefaultQuota int64 = 5 << 20

const keyPrefix = "vault:"

// Key returns the storage key of username's vault.
func Key(username string) string {
	return keyPrefix + username
}

type Vault interface {
	// ListFiles returns the user's files newest first. A user with no vault
	// gets an empty, non-nil slice.
	ListFiles(ctx context.Context, username string) ([]models.EncryptedFile, error)
	// GetFile returns the file with the given id or common.ErrNotFound.
	GetFile(ctx context.Context, username, id string) (models.EncryptedFile, error)
	// AddFile prepends file, failing with common.ErrQuotaExceeded if the
	// result would not fit.
	AddFile(ctx context.Context, username string, file models.EncryptedFile) error
	// DeleteFile removes the file with the given id or fails with
	// common.ErrNotFound.
	DeleteFile(ctx context.Context, username, id string) error
	// UsedSpace is the byte length of the stored vault, 0 when absent or
	// unreadable.
	UsedSpace(ctx context.Context, username string) int64
	Quota() int64
}

type vault struct {
	store storage.Store
	quota int64
	locks *keyedMutex
}

// New returns a Vault over store. A non-positive quota selects DefaultQuota.
func New(store storage.Store, quota int64) Vault {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &vault{store: store, quota: quota, locks: newKeyedMutex()}
}

func (v *vault) Quota() int64 { return v.quota }

// marshal matches the persisted form byte for byte, so its length can be
// checked against the quota before writing.
func marshal(files []models.EncryptedFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(files); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func load(ctx context.Context, repo storage.Repository, username string) ([]models.EncryptedFile, error) {
	raw, err := repo.Get(ctx, Key(username))
	if errors.Is(err, common.ErrNotFound) {
		return []models.EncryptedFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vault: %w", err)
	}

	var files []models.EncryptedFile
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, fmt.Errorf("%w: vault of %q: %v", common.ErrCorruptStore, username, err)
	}
	if files == nil {
		files = []models.EncryptedFile{}
	}
	return files, nil
}

func (v *vault) ListFiles(ctx context.Context, username string) ([]models.EncryptedFile, error) {
	return load(ctx, v.store, username)
}

func (v *vault) GetFile(ctx context.Context, username, id string) (models.EncryptedFile, error) {
	files, err := load(ctx, v.store, username)
	if err != nil {
		return models.EncryptedFile{}, err
	}
	for _, f := range files {
		if f.ID == id {
			return f, nil
		}
	}
	return models.EncryptedFile{}, common.ErrNotFound
}

// mutate runs a locked read-modify-write of username's vault. fn returns the
// new list. With enforceQuota set it is written only if it fits.
func (v *vault) mutate(ctx context.Context, username string, enforceQuota bool, fn func([]models.EncryptedFile) ([]models.EncryptedFile, error)) error {
	unlock := v.locks.Lock(username)
	defer unlock()

	return v.store.Update(ctx, func(ctx context.Context, repo storage.Repository) error {
		files, err := load(ctx, repo, username)
		if err != nil {
			return err
		}
		updated, err := fn(files)
		if err != nil {
			return err
		}
		data, err := marshal(updated)
		if err != nil {
			return fmt.Errorf("encode vault: %w", err)
		}
		if enforceQuota && int64(len(data)) > v.quota {
			return fmt.Errorf("%w: %d of %d bytes", common.ErrQuotaExceeded, len(data), v.quota)
		}
		if err := repo.Set(ctx, Key(username), data); err != nil {
			return fmt.Errorf("save vault: %w", err)
		}
		return nil
	})
}

func (v *vault) AddFile(ctx context.Context, username string, file models.EncryptedFile) error {
	return v.mutate(ctx, username, true, func(files []models.EncryptedFile) ([]models.EncryptedFile, error) {
		if slices.ContainsFunc(files, func(f models.EncryptedFile) bool { return f.ID == file.ID }) {
			return nil, fmt.Errorf("file %s: %w", file.ID, common.ErrAlreadyExists)
		}
		return append([]models.EncryptedFile{file}, files...), nil
	})
}

func (v *vault) DeleteFile(ctx context.Context, username, id string) error {
	// Deletes skip the quota check.
	return v.mutate(ctx, username, false, func(files []models.EncryptedFile) ([]models.EncryptedFile, error) {
		i := slices.IndexFunc(files, func(f models.EncryptedFile) bool { return f.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("file %s: %w", id, common.ErrNotFound)
		}
		return slices.Delete(files, i, i+1), nil
	})
}

func (v *vault) UsedSpace(ctx context.Context, username string) int64 {
	raw, err := v.store.Get(ctx, Key(username))
	if err != nil {
		return 0
	}
	return int64(len(raw))
}

// Search keeps the files whose name contains term, ignoring case, in their
// original order. An empty term keeps everything.
func Search(files []models.EncryptedFile, term string) []models.EncryptedFile {
	needle := strings.ToLower(term)
	out := make([]models.EncryptedFile, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			out = append(out, f)
		}
	}
	return out
}
