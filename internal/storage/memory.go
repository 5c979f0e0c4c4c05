package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fortress/internal/common"
)

// MemoryStore keeps everything in a map. Update calls are serialized and
// buffer their writes until fn succeeds.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	txMu sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = clone(value)
	return nil
}

func (s *MemoryStore) Create(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return common.ErrAlreadyExists
	}
	s.data[key] = clone(value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &memoryTx{parent: s, writes: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range tx.writes {
		if v == nil {
			delete(s.data, k)
			continue
		}
		s.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// memoryTx overlays pending writes on the parent map. A nil value marks a
// pending delete.
type memoryTx struct {
	parent *MemoryStore
	writes map[string][]byte
}

func (t *memoryTx) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		if v == nil {
			return nil, common.ErrNotFound
		}
		return clone(v), nil
	}
	return t.parent.Get(ctx, key)
}

func (t *memoryTx) Set(_ context.Context, key string, value []byte) error {
	t.writes[key] = clone(value)
	return nil
}

func (t *memoryTx) Create(ctx context.Context, key string, value []byte) error {
	if _, err := t.Get(ctx, key); err == nil {
		return common.ErrAlreadyExists
	}
	return t.Set(ctx, key, value)
}

func (t *memoryTx) Delete(_ context.Context, key string) error {
	t.writes[key] = nil
	return nil
}
