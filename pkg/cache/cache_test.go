package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_NotConfigured(t *testing.T) {
	c := New(Config{})
	ctx := context.Background()

	assert.False(t, c.Enabled())

	// Every operation must be a safe no-op.
	c.Set(ctx, "k", "v", time.Minute)
	value, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Empty(t, value)

	c.Del(ctx, "k")
	assert.NoError(t, c.Close())
}

func TestCache_UnreachableBackendDegradesToMiss(t *testing.T) {
	// Nothing listens on this port; operations must degrade, not error.
	c := New(Config{Addr: "127.0.0.1:1"})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	assert.True(t, c.Enabled())

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Del(ctx, "k")
	assert.NoError(t, c.Close())
}
