// Package secretbox cifra blobs pequeños con NaCl secretbox
// (XSalsa20-Poly1305). Lo usa el session store de archivo para proteger
// las refresh sessions persistidas en disco.
package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keyLength   = 32
	nonceLength = 24
)

var (
	// ErrInvalidKey indica que la clave no decodifica a 32 bytes.
	ErrInvalidKey = errors.New("secretbox: key must decode to 32 bytes")

	// ErrDecrypt indica que el blob no autentica (clave errónea o corrupción).
	ErrDecrypt = errors.New("secretbox: decrypt failed")
)

// Key es una clave maestra de 32 bytes lista para usar.
type Key [keyLength]byte

// ParseKey decodifica una clave base64 (std o raw) a Key.
func ParseKey(b64 string) (Key, error) {
	var key Key
	b64 = strings.TrimSpace(b64)
	b, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		b, err = base64.RawStdEncoding.DecodeString(b64)
	}
	if err != nil || len(b) != keyLength {
		return key, ErrInvalidKey
	}
	copy(key[:], b)
	return key, nil
}

// GenerateKey crea una clave aleatoria (para tooling/tests).
func GenerateKey() (Key, error) {
	var key Key
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return key, fmt.Errorf("secretbox: generate key: %w", err)
	}
	return key, nil
}

// Encrypt cifra plaintext y devuelve nonce||ciphertext.
func Encrypt(key Key, plaintext []byte) ([]byte, error) {
	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("secretbox: nonce: %w", err)
	}
	k := [keyLength]byte(key)
	return secretbox.Seal(nonce[:], plaintext, &nonce, &k), nil
}

// Decrypt recibe nonce||ciphertext y devuelve el plaintext.
func Decrypt(key Key, blob []byte) ([]byte, error) {
	if len(blob) < nonceLength {
		return nil, ErrDecrypt
	}
	var nonce [nonceLength]byte
	copy(nonce[:], blob[:nonceLength])
	k := [keyLength]byte(key)
	pt, ok := secretbox.Open(nil, blob[nonceLength:], &nonce, &k)
	if !ok {
		return nil, ErrDecrypt
	}
	return pt, nil
}
