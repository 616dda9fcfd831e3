package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// SignedAccessToken mints a JWT access token with the given identity claims.
// The signing key is arbitrary; the session provider reads claims without
// verifying the signature.
func SignedAccessToken(t *testing.T, userID, email string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   time.Now().Unix(),
	}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

// SessionToken builds an oauth2 token wrapping a signed access token.
func SessionToken(t *testing.T, userID, email string, expiresAt time.Time) *oauth2.Token {
	t.Helper()
	return &oauth2.Token{
		AccessToken: SignedAccessToken(t, userID, email, expiresAt),
		TokenType:   "Bearer",
		Expiry:      expiresAt,
	}
}
