package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// FileProvider resolves sessions from an OAuth2 token stored on disk.
// The access token is a JWT whose claims carry the user identity. Claims are
// parsed without signature verification: the client holds no signing key and
// the task service re-validates the token on every request anyway.
type FileProvider struct {
	tokenPath string
	oauthCfg  *oauth2.Config // nil disables refresh
}

// NewFileProvider creates a provider reading the token from tokenPath.
// oauthCfg, when non-nil, is used to refresh expired tokens against the
// identity provider's token endpoint.
func NewFileProvider(tokenPath string, oauthCfg *oauth2.Config) *FileProvider {
	return &FileProvider{tokenPath: tokenPath, oauthCfg: oauthCfg}
}

// Current implements Provider.
func (p *FileProvider) Current(ctx context.Context) (Session, error) {
	token, err := ReadToken(p.tokenPath)
	if err != nil {
		return Session{}, ErrNoSession
	}

	if !token.Valid() && p.oauthCfg != nil && token.RefreshToken != "" {
		refreshed, err := p.oauthCfg.TokenSource(ctx, token).Token()
		if err != nil {
			return Session{}, ErrNoSession
		}
		// Best effort: a failed write still leaves a usable session.
		_ = WriteToken(p.tokenPath, refreshed)
		token = refreshed
	}

	sess, err := fromToken(token)
	if err != nil {
		return Session{}, ErrNoSession
	}
	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// SignOut implements Provider. Removing an absent token is not an error.
func (p *FileProvider) SignOut(ctx context.Context) error {
	err := os.Remove(p.tokenPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// fromToken extracts the session identity from the access token claims.
func fromToken(token *oauth2.Token) (Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token.AccessToken, claims); err != nil {
		return Session{}, fmt.Errorf("parse access token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Session{}, fmt.Errorf("access token has no subject claim")
	}

	sess := Session{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess, nil
}

// ReadToken loads an OAuth2 token from path.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	return &token, nil
}

// WriteToken saves an OAuth2 token to path with mode 0600.
func WriteToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
