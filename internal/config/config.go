// Package config carga la configuración YAML y aplica overrides por env.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		// AdminAPIKey protege /v1/admin/*. Vacío ⇒ admin API deshabilitada.
		AdminAPIKey string `yaml:"admin_api_key"`
		// RateLimit protege los endpoints de auth. Requiere redis.
		RateLimit struct {
			Enabled bool   `yaml:"enabled"`
			Max     int    `yaml:"max"`
			Window  string `yaml:"window"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`

	Admission struct {
		// BootstrapAllowed: IDs de perfil pre-aprobados al arrancar. Rompe
		// el ciclo del primer despliegue, donde nadie puede aprobar a nadie.
		BootstrapAllowed []string `yaml:"bootstrap_allowed"`
	} `yaml:"admission"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	// Sessions: dónde se persisten las refresh sessions entre reinicios.
	Sessions struct {
		Kind string `yaml:"kind"` // redis | file
		File struct {
			Path string `yaml:"path"`
			// MasterKey base64(32 bytes) para cifrar el archivo con secretbox.
			MasterKey string `yaml:"master_key"`
		} `yaml:"file"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"sessions"`

	JWT struct {
		Issuer     string `yaml:"issuer"`
		Secret     string `yaml:"secret"` // HS256 signing key
		AccessTTL  string `yaml:"access_ttl"`
		RefreshTTL string `yaml:"refresh_ttl"`
	} `yaml:"jwt"`

	Google struct {
		ClientID     string   `yaml:"client_id"`
		ClientSecret string   `yaml:"client_secret"`
		RedirectURL  string   `yaml:"redirect_url"`
		Scopes       []string `yaml:"scopes"` // default: openid,email,profile
	} `yaml:"google"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Sessions.Kind == "" {
		c.Sessions.Kind = "file"
	}
	if c.Sessions.File.Path == "" {
		c.Sessions.File.Path = "./data/sessions.db"
	}
	if c.JWT.AccessTTL == "" {
		c.JWT.AccessTTL = "15m"
	}
	if c.JWT.RefreshTTL == "" {
		c.JWT.RefreshTTL = "720h" // 30d
	}
	if len(c.Google.Scopes) == 0 {
		c.Google.Scopes = []string{"openid", "email", "profile"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.RateLimit.Max <= 0 {
		c.Server.RateLimit.Max = 30
	}
	if c.Server.RateLimit.Window == "" {
		c.Server.RateLimit.Window = "1m"
	}

	// validate string durations
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, err
		}
	}
	for _, d := range []string{c.JWT.AccessTTL, c.JWT.RefreshTTL, c.Cache.Memory.DefaultTTL, c.Server.RateLimit.Window} {
		if _, err := time.ParseDuration(d); err != nil {
			return nil, err
		}
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// AccessTTL retorna el TTL de access token ya parseado.
func (c *Config) AccessTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTTL)
	return d
}

// RefreshTTL retorna el TTL de refresh session ya parseado.
func (c *Config) RefreshTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.RefreshTTL)
	return d
}

// RateLimitWindow retorna la ventana del rate limiter ya parseada.
func (c *Config) RateLimitWindow() time.Duration {
	d, _ := time.ParseDuration(c.Server.RateLimit.Window)
	return d
}

// Validate chequea los valores críticos de configuración.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("config: storage.dsn is required")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	switch c.Cache.Kind {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: cache.kind must be memory|redis, got %q", c.Cache.Kind)
	}
	switch c.Sessions.Kind {
	case "redis", "file":
	default:
		return fmt.Errorf("config: sessions.kind must be redis|file, got %q", c.Sessions.Kind)
	}
	if c.Sessions.Kind == "redis" && strings.TrimSpace(c.Sessions.Redis.Addr) == "" {
		return fmt.Errorf("config: sessions.redis.addr is required when sessions.kind=redis")
	}
	// En prod el flujo social es obligatorio: sin Google no hay sign-in.
	if strings.EqualFold(c.App.Env, "prod") {
		if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
			return fmt.Errorf("config: google.client_id/client_secret are required in prod")
		}
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("ADMIN_API_KEY"); ok {
		c.Server.AdminAPIKey = v
	}
	if v, ok := getEnvStr("DATABASE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
		if c.Sessions.Redis.Addr == "" {
			c.Sessions.Redis.Addr = v
		}
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("SESSIONS_KIND"); ok {
		c.Sessions.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SESSIONS_FILE_PATH"); ok {
		c.Sessions.File.Path = v
	}
	if v, ok := getEnvStr("SESSIONS_MASTER_KEY"); ok {
		c.Sessions.File.MasterKey = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("GOOGLE_CLIENT_ID"); ok {
		c.Google.ClientID = v
	}
	if v, ok := getEnvStr("GOOGLE_CLIENT_SECRET"); ok {
		c.Google.ClientSecret = v
	}
	if v, ok := getEnvStr("GOOGLE_REDIRECT_URL"); ok {
		c.Google.RedirectURL = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
}
