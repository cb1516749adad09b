// Package cache define una interfaz mínima de cache de bytes con backends
// memory (in-process) y redis (distribuido). Las listas read-mostly
// (carousel, standalone lectures, courses) pasan por acá con TTL corto.
package cache

import "time"

// Cache es un cache de bytes best-effort: un miss solo significa re-fetch.
type Cache interface {
	Get(k string) ([]byte, bool)
	Set(k string, v []byte, ttl time.Duration)
	Delete(k string)
}
