package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskpad/internal/session"
	"taskpad/internal/testutil"
)

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token.json")
}

func TestCurrentResolvesIdentityFromClaims(t *testing.T) {
	path := tokenPath(t)
	token := testutil.SessionToken(t, "user-1", "ada@example.com", time.Now().Add(time.Hour))
	if err := session.WriteToken(path, token); err != nil {
		t.Fatal(err)
	}

	p := session.NewFileProvider(path, nil)
	sess, err := p.Current(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sess.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", sess.UserID)
	}
	if sess.Email != "ada@example.com" {
		t.Errorf("expected email claim, got %q", sess.Email)
	}
	if sess.ExpiresAt.IsZero() {
		t.Error("expected expiry from exp claim")
	}
}

func TestCurrentNoTokenFile(t *testing.T) {
	p := session.NewFileProvider(tokenPath(t), nil)
	_, err := p.Current(context.Background())
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestCurrentGarbageTokenFile(t *testing.T) {
	path := tokenPath(t)
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	p := session.NewFileProvider(path, nil)
	_, err := p.Current(context.Background())
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestCurrentExpiredSessionWithoutRefresh(t *testing.T) {
	path := tokenPath(t)
	token := testutil.SessionToken(t, "user-1", "", time.Now().Add(-time.Hour))
	if err := session.WriteToken(path, token); err != nil {
		t.Fatal(err)
	}

	p := session.NewFileProvider(path, nil)
	_, err := p.Current(context.Background())
	if !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired token, got %v", err)
	}
}

func TestSignOutRemovesToken(t *testing.T) {
	path := tokenPath(t)
	token := testutil.SessionToken(t, "user-1", "", time.Now().Add(time.Hour))
	if err := session.WriteToken(path, token); err != nil {
		t.Fatal(err)
	}

	p := session.NewFileProvider(path, nil)
	if err := p.SignOut(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("token file still present after sign out")
	}

	// Signing out again is not an error.
	if err := p.SignOut(context.Background()); err != nil {
		t.Errorf("second sign out failed: %v", err)
	}
}

func TestWriteTokenMode(t *testing.T) {
	path := tokenPath(t)
	token := testutil.SessionToken(t, "user-1", "", time.Now().Add(time.Hour))
	if err := session.WriteToken(path, token); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}
