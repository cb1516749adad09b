// Package app construye y cablea todas las piezas del servicio: config,
// logger, storage, cache, keystore de sesiones, cliente de Google,
// services, controllers y el servidor HTTP.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/aditya1111/learnhub/internal/auth/gate"
	"github.com/aditya1111/learnhub/internal/bootstrap"
	"github.com/aditya1111/learnhub/internal/cache"
	memcache "github.com/aditya1111/learnhub/internal/cache/memory"
	redcache "github.com/aditya1111/learnhub/internal/cache/redis"
	"github.com/aditya1111/learnhub/internal/config"
	adminctl "github.com/aditya1111/learnhub/internal/http/controllers/admin"
	authctl "github.com/aditya1111/learnhub/internal/http/controllers/auth"
	coursesctl "github.com/aditya1111/learnhub/internal/http/controllers/courses"
	doubtsctl "github.com/aditya1111/learnhub/internal/http/controllers/doubts"
	healthctl "github.com/aditya1111/learnhub/internal/http/controllers/health"
	homectl "github.com/aditya1111/learnhub/internal/http/controllers/home"
	profilectl "github.com/aditya1111/learnhub/internal/http/controllers/profile"
	"github.com/aditya1111/learnhub/internal/http/router"
	adminsvc "github.com/aditya1111/learnhub/internal/http/services/admin"
	authsvc "github.com/aditya1111/learnhub/internal/http/services/auth"
	coursessvc "github.com/aditya1111/learnhub/internal/http/services/courses"
	doubtssvc "github.com/aditya1111/learnhub/internal/http/services/doubts"
	homesvc "github.com/aditya1111/learnhub/internal/http/services/home"
	profilesvc "github.com/aditya1111/learnhub/internal/http/services/profile"
	jwtx "github.com/aditya1111/learnhub/internal/jwt"
	"github.com/aditya1111/learnhub/internal/metrics"
	"github.com/aditya1111/learnhub/internal/oauth/google"
	"github.com/aditya1111/learnhub/internal/observability/logger"
	"github.com/aditya1111/learnhub/internal/rate"
	"github.com/aditya1111/learnhub/internal/sessionstore"
	"github.com/aditya1111/learnhub/internal/store/pg"
)

// App es el servicio ensamblado.
type App struct {
	cfg      *config.Config
	store    *pg.Store
	sessions sessionstore.Store
	server   *http.Server
}

// New construye la app completa a partir de la configuración.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Named("app")

	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}

	var ch cache.Cache
	switch cfg.Cache.Kind {
	case "redis":
		ch = redcache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	default:
		ttl, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
		ch = memcache.New(ttl)
	}

	var sessions sessionstore.Store
	switch cfg.Sessions.Kind {
	case "redis":
		sessions = sessionstore.NewRedis(cfg.Sessions.Redis.Addr, cfg.Sessions.Redis.DB, cfg.Sessions.Redis.Prefix)
	default:
		sessions, err = sessionstore.NewFile(cfg.Sessions.File.Path, cfg.Sessions.File.MasterKey)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("app: open session store: %w", err)
		}
	}

	goog, err := google.NewClient(google.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       cfg.Google.Scopes,
	})
	if err != nil {
		// En dev se tolera arrancar sin credenciales de Google; el
		// sign-in devolverá error hasta configurarlas.
		log.Warn("google oauth deshabilitado", logger.Err(err))
	}

	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, cfg.JWT.Secret, cfg.AccessTTL())
	g := gate.New(store.Profiles())

	if ids := cfg.Admission.BootstrapAllowed; len(ids) > 0 {
		if err := bootstrap.EnsureAllowed(ctx, store.Profiles(), ids); err != nil {
			store.Close()
			return nil, fmt.Errorf("app: bootstrap allowlist: %w", err)
		}
	}

	var authLimiter rate.Limiter
	if cfg.Server.RateLimit.Enabled {
		// El limiter vive en redis; sin un redis configurado queda apagado.
		addr := cfg.Cache.Redis.Addr
		if addr == "" {
			addr = cfg.Sessions.Redis.Addr
		}
		if addr == "" {
			log.Warn("rate limit habilitado pero sin redis configurado, queda apagado")
		} else {
			client := rdb.NewClient(&rdb.Options{Addr: addr, DB: cfg.Cache.Redis.DB})
			authLimiter = rate.NewRedisLimiter(client, "rl:auth:",
				cfg.Server.RateLimit.Max, cfg.RateLimitWindow())
		}
	}

	authService := authsvc.NewService(authsvc.Deps{
		Google:     goog,
		Issuer:     issuer,
		Gate:       g,
		Sessions:   sessions,
		RefreshTTL: cfg.RefreshTTL(),
	})
	homeService := homesvc.NewService(homesvc.Deps{
		Carousel:   store.Carousel(),
		Standalone: store.Standalone(),
		Cache:      ch,
	})
	coursesService := coursessvc.NewService(coursessvc.Deps{
		Courses:    store.Courses(),
		Lectures:   store.Lectures(),
		Standalone: store.Standalone(),
		Cache:      ch,
	})
	doubtsService := doubtssvc.NewService(doubtssvc.Deps{Doubts: store.Doubts()})
	profileService := profilesvc.NewService(profilesvc.Deps{Profiles: store.Profiles()})
	adminService := adminsvc.NewService(adminsvc.Deps{Profiles: store.Profiles()})

	metricsHandler, err := metrics.Register(nil)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("app: register metrics: %w", err)
	}

	handler := router.New(router.Deps{
		Auth:    authctl.NewController(authService),
		Profile: profilectl.NewController(profileService),
		Home:    homectl.NewController(homeService),
		Courses: coursesctl.NewController(coursesService),
		Doubts:  doubtsctl.NewController(doubtsService),
		Admin:   adminctl.NewController(adminService),
		Health:  healthctl.NewController(store),

		Issuer:      issuer,
		Gate:        g,
		AdminAPIKey: cfg.Server.AdminAPIKey,
		AuthLimiter: authLimiter,

		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		MetricsHandler:     metricsHandler,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		server:   server,
	}, nil
}

// Run levanta el servidor y bloquea hasta que el contexto se cancele.
// El shutdown drena conexiones con un plazo acotado.
func (a *App) Run(ctx context.Context) error {
	log := logger.Named("app")

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("addr", a.cfg.Server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Close libera los recursos de la app.
func (a *App) Close() {
	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			logger.Named("app").Warn("session store close", logger.Err(err))
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}
