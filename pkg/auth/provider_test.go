package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestClientCredentialsFromEnv(t *testing.T) {
	t.Run("both present", func(t *testing.T) {
		t.Setenv(EnvClientID, "id")
		t.Setenv(EnvClientSecret, "secret")
		creds, err := ClientCredentialsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, ClientCredentials{ID: "id", Secret: "secret"}, creds)
	})

	t.Run("both missing names both", func(t *testing.T) {
		t.Setenv(EnvClientID, "")
		t.Setenv(EnvClientSecret, "")
		_, err := ClientCredentialsFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvClientID)
		assert.Contains(t, err.Error(), EnvClientSecret)
	})

	t.Run("only secret missing names only secret", func(t *testing.T) {
		t.Setenv(EnvClientID, "id")
		t.Setenv(EnvClientSecret, "")
		_, err := ClientCredentialsFromEnv()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), EnvClientID+" and")
		assert.Contains(t, err.Error(), EnvClientSecret)
	})

	t.Run("whitespace is missing", func(t *testing.T) {
		t.Setenv(EnvClientID, "   ")
		t.Setenv(EnvClientSecret, "secret")
		_, err := ClientCredentialsFromEnv()
		require.Error(t, err)
	})
}

func TestResolveEndpoint_GoogleDefaults(t *testing.T) {
	endpoint, err := ResolveEndpoint(context.Background(), nil, EndpointConfig{})
	require.NoError(t, err)
	assert.Equal(t, googleAuthURL, endpoint.AuthURL)
	assert.Equal(t, googleTokenURL, endpoint.TokenURL)
	assert.Equal(t, oauth2.AuthStyleInParams, endpoint.AuthStyle)
}

func TestResolveEndpoint_ExplicitOverrides(t *testing.T) {
	endpoint, err := ResolveEndpoint(context.Background(), nil, EndpointConfig{
		AuthURL:  "https://example.com/auth",
		TokenURL: "https://example.com/token",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/auth", endpoint.AuthURL)
	assert.Equal(t, "https://example.com/token", endpoint.TokenURL)

	_, err = ResolveEndpoint(context.Background(), nil, EndpointConfig{AuthURL: "https://example.com/auth"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set together")
}

func TestResolveEndpoint_IssuerDiscovery(t *testing.T) {
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"issuer":                 serverURL,
			"authorization_endpoint": serverURL + "/auth",
			"token_endpoint":         serverURL + "/token",
			"jwks_uri":               serverURL + "/keys",
		})
	}))
	serverURL = server.URL
	defer server.Close()

	endpoint, err := ResolveEndpoint(context.Background(), server.Client(), EndpointConfig{Issuer: server.URL})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/auth", endpoint.AuthURL)
	assert.Equal(t, server.URL+"/token", endpoint.TokenURL)
	assert.Equal(t, oauth2.AuthStyleInParams, endpoint.AuthStyle)
}

func TestResolveEndpoint_DiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := ResolveEndpoint(context.Background(), server.Client(), EndpointConfig{Issuer: server.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to discover OIDC provider")
}

func TestBuildOAuthConfig_DefaultScopes(t *testing.T) {
	cfg := BuildOAuthConfig(ClientCredentials{ID: "id", Secret: "secret"}, oauth2.Endpoint{}, "http://localhost:8085", nil)
	assert.Equal(t, DefaultScopes, cfg.Scopes)
	assert.Equal(t, "http://localhost:8085", cfg.RedirectURL)

	custom := BuildOAuthConfig(ClientCredentials{}, oauth2.Endpoint{}, "", []string{"only-this"})
	assert.Equal(t, []string{"only-this"}, custom.Scopes)
}
