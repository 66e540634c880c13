package auth

import (
	"context"
	"errors"
	"fmt"
)

// TokenProvider is the single primitive API collaborators call: give me a
// currently valid bearer token for alias. It is the refresher plus the rule
// that a missing credential surfaces as an instruction, not an error code.
type TokenProvider struct {
	Refresher *Refresher
}

// Token returns a currently valid access token for alias.
func (p *TokenProvider) Token(ctx context.Context, alias string) (string, error) {
	token, err := p.Refresher.EnsureValid(ctx, alias)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return "", fmt.Errorf("no valid credential for account %q; run \"gauth login %s\" to authenticate: %w", alias, alias, err)
		}
		return "", err
	}
	return token, nil
}
