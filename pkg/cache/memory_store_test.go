package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Set(ctx, "k", "v", time.Minute))

	val, found, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	assert.NoError(t, store.Delete(ctx, "k", "missing"))

	_, found, err = store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestGetSetJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	ctx := context.Background()
	store := NewMemoryStore()

	found, err := GetJSON(ctx, store, "p", &payload{})
	assert.NoError(t, err)
	assert.False(t, found)

	want := payload{Name: "bookings", Count: 3}
	assert.NoError(t, SetJSON(ctx, store, "p", want, time.Minute))

	var got payload
	found, err = GetJSON(ctx, store, "p", &got)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	// A stale entry that no longer unmarshals reads as a miss.
	assert.NoError(t, store.Set(ctx, "bad", "{not json", time.Minute))
	found, err = GetJSON(ctx, store, "bad", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}
