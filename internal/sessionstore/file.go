package sessionstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/aditya1111/learnhub/internal/security/secretbox"
	"github.com/aditya1111/learnhub/internal/util/atomicwrite"
)

// fileStore guarda las sesiones en un único archivo cifrado con secretbox.
// Pensado para deployments single-node sin Redis. Cada mutación reescribe
// el archivo completo de forma atómica; el volumen de sesiones de este
// sistema (decenas, no millones) lo hace aceptable.
type fileStore struct {
	path string
	key  secretbox.Key

	mu      sync.Mutex
	entries map[string]fileEntry
}

type fileEntry struct {
	Value     []byte    `json:"v"`
	ExpiresAt time.Time `json:"exp,omitempty"` // zero = sin expiración
}

// NewFile abre (o crea) el archivo de sesiones. masterKey es base64(32 bytes).
func NewFile(path, masterKey string) (Store, error) {
	key, err := secretbox.ParseKey(masterKey)
	if err != nil {
		return nil, err
	}
	s := &fileStore{path: path, key: key, entries: map[string]fileEntry{}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	blob, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	pt, err := secretbox.Decrypt(s.key, blob)
	if err != nil {
		return err
	}
	return json.Unmarshal(pt, &s.entries)
}

// persist serializa y cifra el mapa completo. Llamar con mu tomado.
func (s *fileStore) persist() error {
	pt, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	blob, err := secretbox.Encrypt(s.key, pt)
	if err != nil {
		return err
	}
	return atomicwrite.WriteFile(s.path, blob, 0o600)
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		delete(s.entries, key)
		_ = s.persist()
		return nil, ErrNotFound
	}
	return e.Value, nil
}

func (s *fileStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := fileEntry{Value: value}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e
	return s.persist()
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.persist()
}

func (s *fileStore) Close() error { return nil }
