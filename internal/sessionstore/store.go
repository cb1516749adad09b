// Package sessionstore persiste refresh sessions serializadas entre
// reinicios. Es un key-value pass-through puro: la lógica de sesión vive en
// el auth service, acá solo hay get/set/delete con TTL.
//
// Backends: redis (producción) y archivo cifrado con secretbox (single-node,
// el análogo server-side de un keystore protegido por el OS).
package sessionstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indica que la key no existe o ya expiró.
var ErrNotFound = errors.New("sessionstore: not found")

// Store define el contrato del keystore de sesiones.
type Store interface {
	// Get retorna el valor guardado. ErrNotFound si no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda un valor con TTL. ttl <= 0 significa sin expiración.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete elimina la key. Borrar una key inexistente no es error.
	Delete(ctx context.Context, key string) error

	// Close libera recursos del backend.
	Close() error
}
