// Package auth contiene los DTOs de los endpoints de autenticación.
package auth

// URLResponse es la respuesta de GET /v1/auth/google/url.
type URLResponse struct {
	URL string `json:"url"`
}

// SignInRequest es el body de POST /v1/auth/google.
type SignInRequest struct {
	// Code es el authorization code devuelto por Google.
	Code string `json:"code"`
	// Nonce es el nonce enviado en la URL de autorización, si se usó.
	Nonce string `json:"nonce,omitempty"`
}

// SignInResponse es la respuesta de un sign-in o refresh exitoso.
type SignInResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"` // Siempre "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // Segundos hasta expirar el access token
	RefreshToken string `json:"refresh_token"`
	// Status es el estado de admisión: pending_approval o approved.
	Status string `json:"status"`
}

// RefreshRequest es el body de POST /v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SignOutRequest es el body de POST /v1/auth/signout.
type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// StatusResponse es la respuesta de GET /v1/auth/status ("Check Status").
type StatusResponse struct {
	Status string `json:"status"`
}
