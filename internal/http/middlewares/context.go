package middlewares

import (
	"context"
)

type ctxKey string

const (
	// ctxIdentityKey guarda la identidad autenticada del request.
	ctxIdentityKey ctxKey = "identity"
	// ctxRequestIDKey guarda el request ID.
	ctxRequestIDKey ctxKey = "request_id"
)

// Identity es la identidad extraída del access token.
type Identity struct {
	UserID   string
	Email    string
	FullName string
}

// WithIdentity inyecta la identidad en el contexto.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey, id)
}

// GetIdentity obtiene la identidad del contexto.
// El bool es false si el middleware de auth no corrió o el token no validó.
func GetIdentity(ctx context.Context) (Identity, bool) {
	if v := ctx.Value(ctxIdentityKey); v != nil {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}
	return Identity{}, false
}

// GetUserID obtiene el user ID del contexto, o cadena vacía.
func GetUserID(ctx context.Context) string {
	id, _ := GetIdentity(ctx)
	return id.UserID
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto, o cadena vacía.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
