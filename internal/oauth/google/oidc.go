// Package google implementa el cliente OIDC contra Google Identity.
//
// Cubre las tres patas del flujo authorization code: construir la URL de
// autorizacion, canjear el code por tokens y verificar la firma y los
// claims del id_token contra las claves publicas (JWKS) de Google.
package google

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const discoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

var (
	// ErrExchange indica que el token endpoint rechazo el canje del code.
	ErrExchange = errors.New("google: code exchange failed")
	// ErrInvalidIDToken indica un id_token con firma o claims invalidos.
	ErrInvalidIDToken = errors.New("google: invalid id token")
)

// Config son las credenciales OAuth del proyecto en Google Cloud Console.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Client habla con los endpoints de Google. Cachea el discovery document
// y el JWKS; ambos rotan con poca frecuencia.
type Client struct {
	cfg  Config
	http *http.Client

	mu       sync.Mutex
	disc     *discovery
	discExp  time.Time
	keys     map[string]*rsa.PublicKey
	keysETag string
	keysExp  time.Time
}

type discovery struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// NewClient valida la configuracion minima y devuelve el cliente.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("google: client id and secret are required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("google: redirect url is required")
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"openid", "email", "profile"}
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *Client) discover(ctx context.Context) (*discovery, error) {
	c.mu.Lock()
	if c.disc != nil && time.Now().Before(c.discExp) {
		d := c.disc
		c.mu.Unlock()
		return d, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google: discovery request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: discovery status %d", resp.StatusCode)
	}
	var d discovery
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("google: decode discovery: %w", err)
	}
	if d.AuthorizationEndpoint == "" || d.TokenEndpoint == "" || d.JWKSURI == "" {
		return nil, errors.New("google: incomplete discovery document")
	}

	c.mu.Lock()
	c.disc = &d
	c.discExp = time.Now().Add(24 * time.Hour)
	c.mu.Unlock()
	return &d, nil
}

// AuthURL construye la URL del consent screen de Google. El state y el
// nonce los genera el caller y debe validarlos al volver el redirect.
func (c *Client) AuthURL(ctx context.Context, state, nonce string) (string, error) {
	d, err := c.discover(ctx)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(c.cfg.Scopes, " "))
	q.Set("state", state)
	if nonce != "" {
		q.Set("nonce", nonce)
	}
	return d.AuthorizationEndpoint + "?" + q.Encode(), nil
}

// TokenResponse es la respuesta del token endpoint tras canjear el code.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ExchangeCode canjea el authorization code por tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", ErrExchange)
	}
	d, err := c.discover(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrExchange, resp.StatusCode)
	}

	var tr TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExchange, err)
	}
	if tr.IDToken == "" {
		return nil, fmt.Errorf("%w: response missing id_token", ErrExchange)
	}
	return &tr, nil
}

// IDClaims son los claims del id_token que nos interesan.
type IDClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type rawIDClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Nonce         string `json:"nonce"`
	jwtv5.RegisteredClaims
}

// VerifyIDToken verifica firma RS256, issuer, audience, expiracion y
// nonce del id_token, y devuelve los claims de identidad.
func (c *Client) VerifyIDToken(ctx context.Context, idToken, nonce string) (*IDClaims, error) {
	var claims rawIDClaims
	tok, err := jwtv5.ParseWithClaims(idToken, &claims, func(t *jwtv5.Token) (any, error) {
		if t.Method.Alg() != jwtv5.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("unexpected alg %q", t.Method.Alg())
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("id token missing kid header")
		}
		return c.keyForKid(ctx, kid)
	},
		jwtv5.WithExpirationRequired(),
		jwtv5.WithAudience(c.cfg.ClientID),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	iss := claims.Issuer
	if iss != "https://accounts.google.com" && iss != "accounts.google.com" {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidIDToken, iss)
	}
	if nonce != "" && claims.Nonce != nonce {
		return nil, fmt.Errorf("%w: nonce mismatch", ErrInvalidIDToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidIDToken)
	}

	return &IDClaims{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}

// keyForKid busca la clave en el cache de JWKS y refresca si no esta.
// Un kid desconocido tras refrescar es un token que no firmo Google.
func (c *Client) keyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	if key, ok := c.keys[kid]; ok && time.Now().Before(c.keysExp) {
		c.mu.Unlock()
		return key, nil
	}
	c.mu.Unlock()

	if err := c.refreshJWKS(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	key, ok := c.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		Use string `json:"use"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (c *Client) refreshJWKS(ctx context.Context) error {
	d, err := c.discover(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.JWKSURI, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.keysETag != "" {
		req.Header.Set("If-None-Match", c.keysETag)
	}
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("google: jwks request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		c.mu.Lock()
		c.keysExp = time.Now().Add(time.Hour)
		c.mu.Unlock()
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google: jwks status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("google: decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return errors.New("google: jwks contained no usable keys")
	}

	c.mu.Lock()
	c.keys = keys
	c.keysETag = resp.Header.Get("ETag")
	c.keysExp = time.Now().Add(time.Hour)
	c.mu.Unlock()
	return nil
}

func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	exp := 0
	for _, b := range eb {
		exp = exp<<8 | int(b)
	}
	if exp == 0 {
		return nil, errors.New("invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: exp}, nil
}
