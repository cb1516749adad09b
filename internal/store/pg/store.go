// Package pg implementa los repositorios del dominio sobre PostgreSQL (pgx).
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aditya1111/learnhub/internal/domain/repository"
	"github.com/aditya1111/learnhub/internal/observability/logger"
)

// Store agrupa el pool y los repositorios pg.
type Store struct {
	pool *pgxpool.Pool

	profiles   *profileRepo
	courses    *courseRepo
	lectures   *lectureRepo
	standalone *standaloneRepo
	doubts     *doubtRepo
	carousel   *carouselRepo
}

// Config es el tuning opcional del pool.
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

// New crea el Store y abre el pool.
// El ping inicial es best-effort: la app arranca aunque la DB esté caída.
func New(ctx context.Context, dsn string, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	// Mapear MaxIdleConns → MinConns (pgxpool)
	if cfg.MaxIdleConns > 0 {
		pcfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	log := logger.Named("store.pg")
	if err := pool.Ping(ctx); err != nil {
		log.Warn("startup ping failed", logger.Err(err))
	} else {
		log.Info("pool ready", logger.Any("max_conns", pcfg.MaxConns))
	}

	return &Store{
		pool:       pool,
		profiles:   &profileRepo{pool: pool},
		courses:    &courseRepo{pool: pool},
		lectures:   &lectureRepo{pool: pool},
		standalone: &standaloneRepo{pool: pool},
		doubts:     &doubtRepo{pool: pool},
		carousel:   &carouselRepo{pool: pool},
	}, nil
}

// Pool expone el pool interno (migraciones, seeds, health).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Accessors tipados a las interfaces del dominio.

func (s *Store) Profiles() repository.ProfileRepository              { return s.profiles }
func (s *Store) Courses() repository.CourseRepository                { return s.courses }
func (s *Store) Lectures() repository.LectureRepository              { return s.lectures }
func (s *Store) Standalone() repository.StandaloneLectureRepository  { return s.standalone }
func (s *Store) Doubts() repository.DoubtRepository                  { return s.doubts }
func (s *Store) Carousel() repository.CarouselRepository             { return s.carousel }

// mapPgError traduce errores pgx/pgconn a los sentinels del dominio.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return repository.ErrConflict
	}
	return err
}
