package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/aditya1111/learnhub/internal/auth/gate"
	"github.com/aditya1111/learnhub/internal/http/errors"
	jwtx "github.com/aditya1111/learnhub/internal/jwt"
)

// bearerToken extrae el token del header Authorization.
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth valida el access token y deja la identidad en el contexto.
// Sin token o con token inválido corta con 401.
func RequireAuth(issuer *jwtx.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}

			claims, err := issuer.Parse(tok)
			if err != nil {
				errors.WriteError(w, errors.ErrTokenInvalid.WithCause(err))
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   claims.Subject,
				Email:    claims.Email,
				FullName: claims.FullName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireApproved corta con 403 si el usuario autenticado no pasó el
// gate de admisión. Debe montarse después de RequireAuth.
func RequireApproved(g *gate.Gate) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			switch g.Check(r.Context(), userID) {
			case gate.Approved:
				next.ServeHTTP(w, r)
			case gate.Unauthenticated:
				errors.WriteError(w, errors.ErrUnauthorized)
			default:
				errors.WriteError(w, errors.ErrAdmissionPending)
			}
		})
	}
}

// RequireAdminKey protege las rutas de operador con una API key estática
// en el header X-Admin-Key. Comparación en tiempo constante.
func RequireAdminKey(key string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				errors.WriteError(w, errors.ErrForbidden.WithDetail("admin api disabled"))
				return
			}
			got := strings.TrimSpace(r.Header.Get("X-Admin-Key"))
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				errors.WriteError(w, errors.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
