// Package auth implements the credential lifecycle for gauth: the
// interactive authorization-code flow with a loopback redirect, the
// persisted-token refresh algorithm, and the facade API collaborators use to
// obtain a currently valid bearer token for an account alias.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL      = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleTokenInfoURL = "https://www.googleapis.com/oauth2/v3/tokeninfo"

	// EnvClientID and EnvClientSecret carry the OAuth application
	// credentials. Both are required, have no default, and are never read
	// from the config file.
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"

	// DefaultCallbackPort is the loopback port the provider redirects the
	// browser to unless overridden per login.
	DefaultCallbackPort = 8085

	// DefaultCallbackTimeout bounds how long a login waits for the user to
	// finish the browser flow.
	DefaultCallbackTimeout = 2 * time.Minute
)

// DefaultScopes is the fixed superset of permissions every collaborator of
// this tool needs. openid/email are included so the provider returns an
// id_token identifying which Google account was authenticated.
var DefaultScopes = []string{
	"openid",
	"email",
	// Gmail
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.settings.basic",
	"https://www.googleapis.com/auth/gmail.settings.sharing",
	// Calendar
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.events",
	// Contacts
	"https://www.googleapis.com/auth/contacts",
	// Tasks
	"https://www.googleapis.com/auth/tasks",
}

// ClientCredentials identifies the OAuth application at the provider.
type ClientCredentials struct {
	ID     string
	Secret string
}

// ClientCredentialsFromEnv reads the application credentials from the
// process environment. Absence of either is a fatal configuration error and
// the message names exactly what is missing.
func ClientCredentialsFromEnv() (ClientCredentials, error) {
	creds := ClientCredentials{
		ID:     strings.TrimSpace(os.Getenv(EnvClientID)),
		Secret: strings.TrimSpace(os.Getenv(EnvClientSecret)),
	}
	var missing []string
	if creds.ID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.Secret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if len(missing) > 0 {
		return ClientCredentials{}, fmt.Errorf("missing required configuration: set %s in the environment", strings.Join(missing, " and "))
	}
	return creds, nil
}

// EndpointConfig selects the provider endpoints. Explicit URLs win over
// issuer discovery; with everything empty the built-in Google endpoints are
// used and nothing touches the network.
type EndpointConfig struct {
	Issuer   string
	AuthURL  string
	TokenURL string
}

// ResolveEndpoint returns the authorization/token endpoint pair for cfg.
// Client credentials always travel in the request body, never via basic
// auth, matching the provider wire format.
func ResolveEndpoint(ctx context.Context, client *http.Client, cfg EndpointConfig) (oauth2.Endpoint, error) {
	if cfg.AuthURL != "" || cfg.TokenURL != "" {
		if cfg.AuthURL == "" || cfg.TokenURL == "" {
			return oauth2.Endpoint{}, errors.New("auth-url and token-url must be set together")
		}
		return oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL, AuthStyle: oauth2.AuthStyleInParams}, nil
	}
	if cfg.Issuer != "" {
		if client != nil {
			ctx = oidc.ClientContext(ctx, client)
		}
		provider, err := oidc.NewProvider(ctx, cfg.Issuer)
		if err != nil {
			return oauth2.Endpoint{}, fmt.Errorf("failed to discover OIDC provider: %w", err)
		}
		ep := provider.Endpoint()
		ep.AuthStyle = oauth2.AuthStyleInParams
		return ep, nil
	}
	return oauth2.Endpoint{AuthURL: googleAuthURL, TokenURL: googleTokenURL, AuthStyle: oauth2.AuthStyleInParams}, nil
}

// BuildOAuthConfig assembles the oauth2 configuration for one flow.
func BuildOAuthConfig(creds ClientCredentials, endpoint oauth2.Endpoint, redirectURL string, scopes []string) oauth2.Config {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	return oauth2.Config{
		ClientID:     creds.ID,
		ClientSecret: creds.Secret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}
}
