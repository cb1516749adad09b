package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/aditya1111/learnhub/internal/http/errors"
	"github.com/aditya1111/learnhub/internal/observability/logger"
	"github.com/aditya1111/learnhub/internal/rate"
)

// clientIP resuelve la IP del cliente. Toma el primer hop de
// X-Forwarded-For si hay proxy adelante, si no el RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, ok := strings.Cut(xff, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// WithRateLimit limita por IP y ruta usando el limiter dado. Con limiter
// nil es un pass-through: el rate limit es opcional y requiere redis.
// Si redis no responde la request pasa: preferimos degradar el límite
// antes que tirar el sign-in.
func WithRateLimit(limiter rate.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r) + ":" + r.URL.Path
			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter no disponible, request pasa",
					logger.Layer("middleware"), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !res.Allowed {
				retry := int(res.RetryAfter.Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				errors.WriteError(w, errors.ErrTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
