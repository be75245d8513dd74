package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is a read-through cache for serialized API payloads.
// Implementations must treat a missing key as (found=false, nil error).
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// GetJSON reads key and unmarshals it into dest. Returns false on miss
// or on a stale entry that no longer unmarshals.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(raw), ttl)
}
