package home

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aditya1111/learnhub/internal/domain/repository"
)

// countingCarousel cuenta las lecturas y puede bloquear hasta que el test
// lo libere, para forzar que varias requests se pisen.
type countingCarousel struct {
	calls   atomic.Int32
	release chan struct{}
}

func (f *countingCarousel) ListActive(_ context.Context) ([]repository.CarouselImage, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	return []repository.CarouselImage{
		{ID: "banner-01", Title: "Bienvenida", DisplayOrder: 1, IsActive: true},
	}, nil
}

type countingStandalone struct {
	calls atomic.Int32
	err   error
}

func (f *countingStandalone) ListActive(_ context.Context) ([]repository.StandaloneLecture, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []repository.StandaloneLecture{
		{ID: "standalone-01", Title: "Intro", DisplayOrder: 1, IsActive: true},
	}, nil
}

func (f *countingStandalone) GetByID(_ context.Context, _ string) (*repository.StandaloneLecture, error) {
	return nil, repository.ErrNotFound
}

func (f *countingStandalone) UpsertProgress(_ context.Context, _ repository.UpsertProgressInput) error {
	return nil
}

func (f *countingStandalone) GetProgress(_ context.Context, _, _ string) (*repository.PlaybackProgress, error) {
	return nil, repository.ErrNotFound
}

// mapCache es un cache.Cache de test sin expiración.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(k string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[k]
	return v, ok
}

func (c *mapCache) Set(k string, v []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[k] = v
}

func (c *mapCache) Delete(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, k)
}

func TestGetBuildsBothSections(t *testing.T) {
	carousel := &countingCarousel{}
	standalone := &countingStandalone{}
	s := NewService(Deps{Carousel: carousel, Standalone: standalone})

	resp, err := s.Get(context.Background())
	require.NoError(t, err)

	// Las dos consultas corren en el mismo build.
	require.Len(t, resp.Carousel, 1)
	require.Len(t, resp.Lectures, 1)
	assert.Equal(t, "banner-01", resp.Carousel[0].ID)
	assert.Equal(t, "standalone-01", resp.Lectures[0].ID)
	assert.Equal(t, int32(1), carousel.calls.Load())
	assert.Equal(t, int32(1), standalone.calls.Load())
}

func TestConcurrentGetsCollapseToOneBuild(t *testing.T) {
	carousel := &countingCarousel{release: make(chan struct{})}
	standalone := &countingStandalone{}
	s := NewService(Deps{Carousel: carousel, Standalone: standalone})
	ctx := context.Background()

	const requests = 8
	var wg sync.WaitGroup
	errs := make([]error, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Get(ctx)
		}(i)
	}

	// Esperar a que el primer build esté bloqueado dentro del repo y el
	// resto encolado detrás, y recién ahí soltar.
	require.Eventually(t, func() bool {
		return carousel.calls.Load() == 1
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(carousel.release)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int32(1), carousel.calls.Load(), "una sola consulta por estampida")
	assert.Equal(t, int32(1), standalone.calls.Load())
}

func TestGetServesFromCache(t *testing.T) {
	carousel := &countingCarousel{}
	standalone := &countingStandalone{}
	s := NewService(Deps{Carousel: carousel, Standalone: standalone, Cache: newMapCache()})
	ctx := context.Background()

	first, err := s.Get(ctx)
	require.NoError(t, err)
	second, err := s.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), carousel.calls.Load(), "el hit de cache no vuelve al repo")

	// Cache corrupto: se descarta y se reconstruye.
	ch := newMapCache()
	ch.Set(cacheKey, []byte("{nope"), 0)
	s2 := NewService(Deps{Carousel: carousel, Standalone: standalone, Cache: ch})
	resp, err := s2.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, resp.Carousel, 1)
}

func TestGetPropagatesRepoError(t *testing.T) {
	carousel := &countingCarousel{}
	standalone := &countingStandalone{err: fmt.Errorf("db down")}
	s := NewService(Deps{Carousel: carousel, Standalone: standalone})

	_, err := s.Get(context.Background())
	require.Error(t, err)

	_, err = s.Carousel(context.Background())
	require.Error(t, err)
}
