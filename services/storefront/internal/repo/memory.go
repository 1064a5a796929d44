package repo

import (
	"context"
	"sync"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
)

// MemoryBackend keeps carts in process memory. Contents are lost on restart.
type MemoryBackend struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{carts: make(map[string][]byte)}
}

func (b *MemoryBackend) Open(sessionID string) cart.Storage {
	return &memoryStorage{b: b, sessionID: sessionID}
}

func (b *MemoryBackend) Delete(_ context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.carts, sessionID)
	return nil
}

func (b *MemoryBackend) Sessions() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.carts)
}

type memoryStorage struct {
	b         *MemoryBackend
	sessionID string
}

func (s *memoryStorage) Load(context.Context) ([]byte, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	data, ok := s.b.carts[s.sessionID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *memoryStorage) Save(_ context.Context, data []byte) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.carts[s.sessionID] = append([]byte(nil), data...)
	return nil
}
