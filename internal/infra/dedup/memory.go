package dedup

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore отметки обработанных сообщений в памяти процесса
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore создает in-memory хранилище отметок
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// MarkProcessed returns true when the id was not seen before and is now marked
func (s *MemoryStore) MarkProcessed(ctx context.Context, provider, messageID string) (bool, error) {
	if messageID == "" {
		return false, ErrEmptyID
	}
	// Add атомарен и не перезаписывает существующий ключ
	if err := s.cache.Add(key(provider, messageID), struct{}{}, s.ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Forget снимает отметку
func (s *MemoryStore) Forget(ctx context.Context, provider, messageID string) error {
	s.cache.Delete(key(provider, messageID))
	return nil
}
