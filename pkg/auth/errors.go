package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// ErrNoCredential marks every condition whose remedy is a full interactive
// re-authorization: no record for the alias, an expired token without a
// refresh token, or a failed refresh exchange. It is never retried.
var ErrNoCredential = errors.New("no usable credential")

// ErrCallbackTimeout is returned when the user does not complete the browser
// flow before the callback listener's deadline.
var ErrCallbackTimeout = errors.New("timed out waiting for the browser callback")

// AuthorizationError carries the provider's error redirect, e.g. the user
// denying consent.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "authorization failed: " + e.Reason
}

// wrapProviderError surfaces a token-endpoint failure with the provider's
// response body verbatim; those bodies are the only useful debugging signal
// OAuth providers give.
func wrapProviderError(op string, err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.Response != nil {
		return fmt.Errorf("%s: token endpoint returned %s: %s", op, rErr.Response.Status, strings.TrimSpace(string(rErr.Body)))
	}
	return fmt.Errorf("%s: %w", op, err)
}
