// Package jwt emite y valida los access tokens de la aplicación (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indica un token mal firmado, expirado o con claims inválidas.
	ErrInvalidToken = errors.New("jwt: invalid token")
)

// Claims son las claims de un access token de learnhub.
type Claims struct {
	FullName string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	jwtv5.RegisteredClaims
}

// Issuer firma access tokens con un secreto HS256.
type Issuer struct {
	iss       string
	secret    []byte
	accessTTL time.Duration
}

// NewIssuer crea un Issuer. accessTTL define la vida del access token.
func NewIssuer(iss, secret string, accessTTL time.Duration) *Issuer {
	return &Issuer{iss: iss, secret: []byte(secret), accessTTL: accessTTL}
}

// IssueAccess emite un access token para el subject dado.
// Retorna el token firmado y su expiración.
func (i *Issuer) IssueAccess(sub, fullName, email string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(i.accessTTL)

	claims := Claims{
		FullName: fullName,
		Email:    email,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.iss,
			Subject:   sub,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}

	tok := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, expiración e issuer, y devuelve las claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwtv5.ParseWithClaims(raw, &claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	}, jwtv5.WithIssuer(i.iss), jwtv5.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
