package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenInfo is the provider's view of an access token, as reported by the
// tokeninfo endpoint. Numeric fields arrive as strings there.
type TokenInfo struct {
	Scope         string `json:"scope"`
	ExpiresIn     string `json:"expires_in"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Audience      string `json:"aud"`
}

// FetchTokenInfo asks the provider what it thinks of an access token. Used
// by `gauth status --verify`; never part of the refresh path. An empty
// baseURL means Google's tokeninfo endpoint.
func FetchTokenInfo(ctx context.Context, baseURL, accessToken string) (*TokenInfo, error) {
	if baseURL == "" {
		baseURL = googleTokenInfoURL
	}
	client := resty.New().SetTimeout(30 * time.Second)
	var info TokenInfo
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("access_token", accessToken).
		SetResult(&info).
		Get(baseURL)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tokeninfo returned %s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	}
	return &info, nil
}
