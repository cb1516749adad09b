package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("https://api.learnhub.dev", "test-secret", 15*time.Minute)

	tok, exp, err := iss.IssueAccess("user-1", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "Ada Lovelace", claims.FullName)
	require.Equal(t, "ada@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := NewIssuer("https://api.learnhub.dev", "secret-a", time.Minute)
	b := NewIssuer("https://api.learnhub.dev", "secret-b", time.Minute)

	tok, _, err := a.IssueAccess("user-1", "", "")
	require.NoError(t, err)

	_, err = b.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	iss := NewIssuer("https://api.learnhub.dev", "s", -time.Minute)

	tok, _, err := iss.IssueAccess("user-1", "", "")
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	other := NewIssuer("https://other.example.com", "s", time.Minute)
	iss := NewIssuer("https://api.learnhub.dev", "s", time.Minute)

	tok, _, err := other.IssueAccess("user-1", "", "")
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	iss := NewIssuer("https://api.learnhub.dev", "s", time.Minute)
	_, err := iss.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
