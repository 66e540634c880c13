package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"

	"github.com/openclaw/gauth/pkg/store"
)

// LoginOptions tunes one interactive authorization run.
type LoginOptions struct {
	// Port for the loopback listener; DefaultCallbackPort when zero.
	Port int
	// Timeout bounds the wait for the browser redirect.
	Timeout time.Duration
	// NoBrowser skips launching a browser; the URL is always printed.
	NoBrowser bool
	// Scopes overrides DefaultScopes when non-empty.
	Scopes []string
	// Endpoints overrides the provider endpoints (config file knob).
	Endpoints EndpointConfig
	// Out receives user-facing progress output; defaults to stdout.
	Out io.Writer
	// HTTPClient is used for endpoint discovery when set.
	HTTPClient *http.Client
}

// LoginResult reports a successful authorization.
type LoginResult struct {
	Record store.Record
	// Email of the authenticated Google account, when the provider returned
	// an id_token. Display only.
	Email string
}

// Login drives the end-to-end interactive flow for alias: start the loopback
// listener, send the user to the consent page, wait for the redirect,
// exchange the code, and persist the credential. Nothing is persisted unless
// the exchange succeeds, so any loadable record is fully usable.
func Login(ctx context.Context, creds ClientCredentials, st store.Store, alias string, opts LoginOptions) (*LoginResult, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	port := opts.Port
	if port == 0 {
		port = DefaultCallbackPort
	}

	endpoint, err := ResolveEndpoint(ctx, opts.HTTPClient, opts.Endpoints)
	if err != nil {
		return nil, err
	}

	listener, err := NewCallbackListener(port)
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	// The provider rejects the exchange if this differs from the redirect
	// URI in the authorization request, so both come from the listener.
	oauthCfg := BuildOAuthConfig(creds, endpoint, listener.RedirectURL(), opts.Scopes)

	authURL := oauthCfg.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		// Without forced consent, repeat authorizations omit the refresh
		// token and the stored one could never be replaced after revocation.
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	_, _ = fmt.Fprintf(out, "Opening browser for authentication...\nIf the browser doesn't open, visit:\n%s\n", authURL)
	if !opts.NoBrowser {
		_ = openBrowser(authURL)
	}
	_, _ = fmt.Fprintf(out, "Waiting for authentication on %s...\n", listener.RedirectURL())

	code, err := listener.Await(ctx, opts.Timeout)
	if err != nil {
		if errors.Is(err, ErrCallbackTimeout) {
			return nil, fmt.Errorf("%w after %s; re-run the login", err, effectiveTimeout(opts.Timeout))
		}
		return nil, err
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, wrapProviderError("code exchange failed", err)
	}

	rec := recordFromToken(token, time.Now())
	if err := st.Save(alias, rec); err != nil {
		return nil, err
	}

	idToken, _ := token.Extra("id_token").(string)
	return &LoginResult{Record: rec, Email: EmailFromIDToken(idToken)}, nil
}

func effectiveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultCallbackTimeout
	}
	return timeout
}

// recordFromToken maps a token response onto the persisted record. The
// provider may omit the lifetime; assume the usual hour then.
func recordFromToken(token *oauth2.Token, now time.Time) store.Record {
	expiry := token.Expiry
	if expiry.IsZero() {
		expiry = now.Add(defaultTokenLifetime)
	}
	scope, _ := token.Extra("scope").(string)
	return store.Record{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    expiry.Unix(),
		Scope:        scope,
	}
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Start()
}
