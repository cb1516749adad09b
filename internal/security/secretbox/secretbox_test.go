package secretbox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	blob, err := Encrypt(key, []byte(`{"sid":"abc"}`))
	require.NoError(t, err)
	require.NotEqual(t, []byte(`{"sid":"abc"}`), blob)

	pt, err := Decrypt(key, blob)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"sid":"abc"}`), pt)
}

func TestDecryptWrongKey(t *testing.T) {
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()

	blob, err := Encrypt(k1, []byte("payload"))
	require.NoError(t, err)

	_, err = Decrypt(k2, blob)
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptTruncated(t *testing.T) {
	k, _ := GenerateKey()
	_, err := Decrypt(k, []byte("short"))
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestParseKey(t *testing.T) {
	k, _ := GenerateKey()
	b64 := base64.StdEncoding.EncodeToString(k[:])

	parsed, err := ParseKey(b64)
	require.NoError(t, err)
	require.Equal(t, k, parsed)

	_, err = ParseKey("definitely-not-base64!")
	require.ErrorIs(t, err, ErrInvalidKey)

	_, err = ParseKey(base64.StdEncoding.EncodeToString([]byte("too-short")))
	require.ErrorIs(t, err, ErrInvalidKey)
}
