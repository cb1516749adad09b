// Package memory es el backend in-process del cache, pensado para dev y
// despliegues de un solo nodo. Guarda los bytes ya serializados de las
// listas del home y del catálogo; al reiniciar el proceso se pierde todo,
// que para un cache best-effort está bien.
package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aditya1111/learnhub/internal/cache"
)

// Las entradas expiradas se barren cada tanto; con los TTL cortos de las
// listas la frecuencia exacta del barrido no importa.
const janitorInterval = time.Minute

type memCache struct{ c *gocache.Cache }

// New crea el backend. defaultTTL aplica cuando un Set pasa ttl <= 0.
func New(defaultTTL time.Duration) cache.Cache {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	return &memCache{c: gocache.New(defaultTTL, janitorInterval)}
}

func (m *memCache) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

func (m *memCache) Set(k string, v []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(k, v, ttl)
}

func (m *memCache) Delete(k string) { m.c.Delete(k) }
