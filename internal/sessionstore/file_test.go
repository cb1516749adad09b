package sessionstore

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/security/secretbox"
)

func testKey(t *testing.T) string {
	t.Helper()
	k, err := secretbox.GenerateKey()
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(k[:])
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")
	key := testKey(t)

	s, err := NewFile(path, key)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "rt1", []byte(`{"user":"u1"}`), time.Hour))

	got, err := s.Get(ctx, "rt1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"user":"u1"}`), got)

	// Reabrir desde disco: debe sobrevivir al "reinicio".
	s2, err := NewFile(path, key)
	require.NoError(t, err)
	got, err = s2.Get(ctx, "rt1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"user":"u1"}`), got)
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(filepath.Join(t.TempDir(), "sessions.db"), testKey(t))
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err = s.Get(ctx, "short")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(filepath.Join(t.TempDir(), "sessions.db"), testKey(t))
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	// Borrar una key inexistente no es error.
	require.NoError(t, s.Delete(ctx, "nope"))
}

func TestFileStoreWrongKey(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	s, err := NewFile(path, testKey(t))
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))

	_, err = NewFile(path, testKey(t))
	require.ErrorIs(t, err, secretbox.ErrDecrypt)
}
