package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an in-process Store. Used when Redis is not
// configured, and in tests.
func NewMemoryStore() Store {
	return &memoryStore{
		c: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	val, found := s.c.Get(key)
	if !found {
		return "", false, nil
	}
	str, ok := val.(string)
	if !ok {
		return "", false, nil
	}
	return str, true, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.c.Set(key, value, ttl)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.c.Delete(key)
	}
	return nil
}
