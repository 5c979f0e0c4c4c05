package storage

import "context"

// Repository reads and writes single keys.
//
// Get returns common.ErrNotFound for a missing key. Create fails with
// common.ErrAlreadyExists instead of overwriting. Delete of a missing key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Create(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is a Repository that can also group writes atomically.
type Store interface {
	Repository

	// Update calls fn with a Repository scoped to one unit of work. If fn
	// returns an error, none of its writes are kept.
	Update(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error

	Close() error
}
