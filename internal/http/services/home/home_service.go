// Package home arma el contenido de la pantalla principal: carrusel y
// lectures sueltas activas.
package home

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/aditya1111/learnhub/internal/cache"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/home"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

const cacheKey = "home:v1"

// Service define las operaciones del home.
type Service interface {
	Get(ctx context.Context) (*dto.Response, error)
	Carousel(ctx context.Context) ([]dto.CarouselImage, error)
	Lectures(ctx context.Context) ([]dto.Lecture, error)
}

// Deps contiene las dependencias del servicio.
type Deps struct {
	Carousel   repository.CarouselRepository
	Standalone repository.StandaloneLectureRepository
	Cache      cache.Cache
	CacheTTL   time.Duration
}

type service struct {
	carousel   repository.CarouselRepository
	standalone repository.StandaloneLectureRepository
	cache      cache.Cache
	cacheTTL   time.Duration
	group      singleflight.Group
}

func NewService(deps Deps) Service {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &service{
		carousel:   deps.Carousel,
		standalone: deps.Standalone,
		cache:      deps.Cache,
		cacheTTL:   ttl,
	}
}

// Get retorna el home completo. El resultado se cachea y las misses
// concurrentes se colapsan en una sola consulta con singleflight.
func (s *service) Get(ctx context.Context) (*dto.Response, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(cacheKey); ok {
			var resp dto.Response
			if err := json.Unmarshal(raw, &resp); err == nil {
				return &resp, nil
			}
			// Cache corrupto: se ignora y se reconstruye.
			s.cache.Delete(cacheKey)
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		return s.build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.Response), nil
}

// Carousel retorna solo los banners activos.
func (s *service) Carousel(ctx context.Context) ([]dto.CarouselImage, error) {
	resp, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Carousel, nil
}

// Lectures retorna solo las lectures sueltas activas.
func (s *service) Lectures(ctx context.Context) ([]dto.Lecture, error) {
	resp, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Lectures, nil
}

// build consulta carrusel y lectures en paralelo y guarda el resultado.
func (s *service) build(ctx context.Context) (*dto.Response, error) {
	var (
		banners  []repository.CarouselImage
		lectures []repository.StandaloneLecture
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		banners, err = s.carousel.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		lectures, err = s.standalone.ListActive(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.Response{
		Carousel: dto.CarouselFromDomain(banners),
		Lectures: dto.LecturesFromDomain(lectures),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.Set(cacheKey, raw, s.cacheTTL)
		} else {
			logger.From(ctx).Warn("no se pudo cachear el home",
				logger.Layer("service"), logger.Component("home"), logger.Err(err))
		}
	}
	return resp, nil
}
