package cart

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound reports that no cart is persisted for the session.
var ErrNotFound = errors.New("cart not found")

// Backend is the durable key-value store behind a Store. Payloads are
// opaque bytes; the Store owns the encoding.
type Backend interface {
	Load(ctx context.Context, session string) ([]byte, error)
	Save(ctx context.Context, session string, data []byte) error
	Delete(ctx context.Context, session string) error
}

// MemoryBackend keeps carts in process memory. Used in tests and as a
// fallback when no Redis address is configured.
type MemoryBackend struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{carts: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, session string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.carts[session]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *MemoryBackend) Save(_ context.Context, session string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[session] = data
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, session)
	return nil
}
