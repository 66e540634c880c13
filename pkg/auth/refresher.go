package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/openclaw/gauth/pkg/store"
)

const (
	// ExpirySkew is the safety buffer subtracted from a token's expiry when
	// deciding it is still valid. A token that would expire mid-flight fails
	// the API call anyway, so refreshing a little early is the cheaper side
	// of the trade.
	ExpirySkew = 5 * time.Minute

	// defaultTokenLifetime applies when the provider omits expires_in.
	defaultTokenLifetime = time.Hour
)

// Refresher turns stored records into currently valid access tokens,
// refreshing against the provider's token endpoint when the stored one is
// expired or about to expire.
type Refresher struct {
	Store store.Store
	// Config supplies the token endpoint and client credentials. RedirectURL
	// and Scopes are not used by the refresh grant.
	Config oauth2.Config
	Log    *zap.SugaredLogger
	// Now is the clock; overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Refresher) log() *zap.SugaredLogger {
	if r.Log != nil {
		return r.Log
	}
	return zap.NewNop().Sugar()
}

// EnsureValid returns an access token for alias that is valid for at least
// ExpirySkew from now. Inside the skew window it performs the refresh grant,
// persists the updated record, and returns the new token. Every failure mode
// resolves to ErrNoCredential: the remedy is always a full re-authorization,
// never an automatic retry.
func (r *Refresher) EnsureValid(ctx context.Context, alias string) (string, error) {
	rec, ok := r.Store.Load(alias)
	if !ok {
		return "", fmt.Errorf("account %q: %w", alias, ErrNoCredential)
	}
	if rec.Valid(r.now(), ExpirySkew) {
		return rec.AccessToken, nil
	}
	if !rec.HasRefreshToken() {
		r.log().Debugw("stored token expired and no refresh token on record", "alias", alias)
		return "", fmt.Errorf("account %q: token expired and no refresh token stored: %w", alias, ErrNoCredential)
	}

	r.log().Debugw("refreshing access token", "alias", alias)
	// Seeding the source with only the refresh token forces the refresh
	// grant instead of reusing the expired access token.
	src := r.Config.TokenSource(ctx, &oauth2.Token{RefreshToken: rec.RefreshToken})
	token, err := src.Token()
	if err != nil {
		// Revoked consent and transient network failures land here alike;
		// both demand re-authorization, but the cause is worth logging.
		r.log().Warnw("token refresh failed", "alias", alias, "error", wrapProviderError("refresh", err).Error())
		return "", fmt.Errorf("account %q: token refresh failed: %w", alias, ErrNoCredential)
	}

	updated := rec
	updated.AccessToken = token.AccessToken
	// The provider may omit the refresh token on reissue; the stored one
	// stays usable and must never be cleared.
	if token.RefreshToken != "" {
		updated.RefreshToken = token.RefreshToken
	}
	if token.Expiry.IsZero() {
		updated.ExpiresAt = r.now().Add(defaultTokenLifetime).Unix()
	} else {
		updated.ExpiresAt = token.Expiry.Unix()
	}
	if scope, ok := token.Extra("scope").(string); ok && scope != "" {
		updated.Scope = scope
	}
	if err := r.Store.Save(alias, updated); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token for %q: %w", alias, err)
	}
	return updated.AccessToken, nil
}
