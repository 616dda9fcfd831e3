package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/service"
	"taskpad/internal/session"
)

const (
	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// OAuthConfig builds the oauth2 configuration for the identity provider, or
// nil when the provider endpoints are not configured.
func OAuthConfig(cfg *config.Config) *oauth2.Config {
	if cfg.Auth.ClientID == "" || cfg.Auth.AuthURL == "" || cfg.Auth.TokenURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID: cfg.Auth.ClientID,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.Auth.AuthURL,
			TokenURL: cfg.Auth.TokenURL,
		},
	}
}

// LoginCmd implements the login command: a browser-based OAuth2 PKCE flow
// against the identity provider, with the token stored in the config dir.
type LoginCmd struct{}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Authenticate with the task service" }
func (c *LoginCmd) Usage() string      { return "taskpad login [common flags]" }
func (c *LoginCmd) NeedsSession() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	oauthConfig := OAuthConfig(cfg)
	if oauthConfig == nil {
		output.FormatError(errOut, "identity provider not configured")
		fmt.Fprintln(errOut, "")
		fmt.Fprintf(errOut, "Set auth.client_id, auth.auth_url, and auth.token_url in %s/%s,\n", cfg.Dir, config.ConfigFile)
		fmt.Fprintln(errOut, "or export TASKPAD_AUTH_CLIENT_ID, TASKPAD_AUTH_URL, TASKPAD_TOKEN_URL.")
		fmt.Fprintln(errOut, "Then run 'taskpad login' again.")
		return exitcode.AuthError
	}

	// Already logged in with a live session?
	provider := session.NewFileProvider(cfg.TokenPath(), oauthConfig)
	if _, err := provider.Current(ctx); err == nil {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	// Find available port for the loopback callback
	port, listener, err := findAvailablePort()
	if err != nil {
		output.FormatError(errOut, "could not bind to local port for OAuth callback")
		return exitcode.AuthError
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	// Start callback server
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- fmt.Errorf("no code in callback")
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for callback or timeout
	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		output.FormatError(errOut, "%v", err)
		return exitcode.AuthError
	case <-time.After(oauthCallbackTimeout):
		output.FormatError(errOut, "oauth callback timed out")
		return exitcode.AuthError
	case <-ctx.Done():
		output.FormatError(errOut, "cancelled")
		return exitcode.AuthError
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	// Exchange code for token
	exchangeCtx, cancelExchange := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancelExchange()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		output.FormatError(errOut, "failed to exchange code for token: %v", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		output.FormatError(errOut, "failed to create config directory: %v", err)
		return exitcode.AuthError
	}
	if err := session.WriteToken(cfg.TokenPath(), token); err != nil {
		output.FormatError(errOut, "failed to save token: %v", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		addr := fmt.Sprintf("localhost:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}
