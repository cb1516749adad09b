package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCacheRoundTrip(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("home:v1", []byte(`{"carousel":[]}`), time.Minute)
	got, ok := c.Get("home:v1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"carousel":[]}`), got)

	c.Delete("home:v1")
	_, ok = c.Get("home:v1")
	assert.False(t, ok)
}

func TestMemCacheDefaultTTLFallback(t *testing.T) {
	// Tanto el constructor como Set toleran ttl <= 0 cayendo al default.
	c := New(0)
	c.Set("k", []byte("v"), 0)

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok, "una entrada vencida no debe volver")
}
