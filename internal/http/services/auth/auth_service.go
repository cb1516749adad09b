// Package auth implementa el flujo de sign-in con Google, la rotación de
// refresh sessions y el chequeo de admisión.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aditya1111/learnhub/internal/auth/gate"
	"github.com/aditya1111/learnhub/internal/domain/repository"
	dto "github.com/aditya1111/learnhub/internal/http/dto/auth"
	jwtx "github.com/aditya1111/learnhub/internal/jwt"
	"github.com/aditya1111/learnhub/internal/metrics"
	"github.com/aditya1111/learnhub/internal/oauth/google"
	"github.com/aditya1111/learnhub/internal/observability/logger"
	"github.com/aditya1111/learnhub/internal/sessionstore"
)

// Errores del servicio.
var (
	ErrCodeMissing    = fmt.Errorf("code is required")
	ErrSignInFailed   = fmt.Errorf("sign-in with google failed")
	ErrRefreshInvalid = fmt.Errorf("refresh token invalid or expired")
	ErrGoogleDisabled = fmt.Errorf("google oauth is not configured")
)

// Service define las operaciones de autenticación.
type Service interface {
	// AuthURL construye la URL del consent screen de Google.
	AuthURL(ctx context.Context, state, nonce string) (string, error)

	// SignIn canjea el code, verifica el id_token, garantiza el perfil y
	// emite el par de tokens. Funciona también para cuentas sin admitir:
	// el status de la respuesta dice en qué estado quedó la cuenta.
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error)

	// Refresh rota la refresh session y emite un access token nuevo.
	Refresh(ctx context.Context, refreshToken string) (*dto.SignInResponse, error)

	// SignOut elimina la refresh session. Idempotente.
	SignOut(ctx context.Context, refreshToken string) error

	// Status re-chequea la admisión del usuario ("Check Status").
	Status(ctx context.Context, userID string) dto.StatusResponse
}

// Deps contiene las dependencias del servicio.
type Deps struct {
	Google     *google.Client
	Issuer     *jwtx.Issuer
	Gate       *gate.Gate
	Sessions   sessionstore.Store
	RefreshTTL time.Duration
}

type service struct {
	google     *google.Client
	issuer     *jwtx.Issuer
	gate       *gate.Gate
	sessions   sessionstore.Store
	refreshTTL time.Duration
}

func NewService(deps Deps) Service {
	return &service{
		google:     deps.Google,
		issuer:     deps.Issuer,
		gate:       deps.Gate,
		sessions:   deps.Sessions,
		refreshTTL: deps.RefreshTTL,
	}
}

// refreshSession es el payload guardado en el keystore bajo el refresh token.
type refreshSession struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

const sessionKeyPrefix = "refresh:"

func (s *service) AuthURL(ctx context.Context, state, nonce string) (string, error) {
	if s.google == nil {
		return "", ErrGoogleDisabled
	}
	return s.google.AuthURL(ctx, state, nonce)
}

func (s *service) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("SignIn"),
	)

	if s.google == nil {
		return nil, ErrGoogleDisabled
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrCodeMissing
	}

	tokens, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		log.Warn("code exchange rechazado", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}

	claims, err := s.google.VerifyIDToken(ctx, tokens.IDToken, req.Nonce)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		log.Warn("id_token invalido", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}

	profile, err := s.gate.EnsureProfile(ctx, repository.CreateProfileInput{
		ID:        claims.Subject,
		FullName:  claims.Name,
		AvatarURL: claims.Picture,
	})
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	resp, err := s.issueTokens(ctx, refreshSession{
		UserID:   profile.ID,
		Email:    claims.Email,
		FullName: profile.FullName,
	})
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	status := s.gate.Check(ctx, profile.ID)
	resp.Status = string(status)
	if status == gate.Approved {
		metrics.SignInsTotal.WithLabelValues("ok").Inc()
	} else {
		metrics.SignInsTotal.WithLabelValues("denied").Inc()
	}
	log.Info("sign-in completado", logger.UserID(profile.ID), logger.String("status", resp.Status))
	return resp, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*dto.SignInResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Refresh"),
	)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrRefreshInvalid
	}

	key := sessionKeyPrefix + refreshToken
	raw, err := s.sessions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	var sess refreshSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		log.Error("refresh session corrupta, se invalida", logger.Err(err))
		_ = s.sessions.Delete(ctx, key)
		return nil, ErrRefreshInvalid
	}

	// Rotación: el token viejo muere antes de emitir el nuevo.
	if err := s.sessions.Delete(ctx, key); err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, sess)
	if err != nil {
		return nil, err
	}
	resp.Status = string(s.gate.Check(ctx, sess.UserID))
	return resp, nil
}

func (s *service) SignOut(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionKeyPrefix+refreshToken)
}

func (s *service) Status(ctx context.Context, userID string) dto.StatusResponse {
	return dto.StatusResponse{Status: string(s.gate.Check(ctx, userID))}
}

// issueTokens emite el access token y persiste una refresh session nueva.
func (s *service) issueTokens(ctx context.Context, sess refreshSession) (*dto.SignInResponse, error) {
	access, exp, err := s.issuer.IssueAccess(sess.UserID, sess.FullName, sess.Email)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionKeyPrefix+refresh, raw, s.refreshTTL); err != nil {
		return nil, err
	}

	return &dto.SignInResponse{
		AccessToken:  access,
		TokenType:    "Bearer",
		ExpiresIn:    int64(time.Until(exp).Seconds()),
		RefreshToken: refresh,
	}, nil
}
