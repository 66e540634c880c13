package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// EmailFromIDToken pulls the account email out of an OIDC id_token without
// verifying the signature. The value is only ever displayed to the user who
// just completed the flow, never used for authorization decisions.
func EmailFromIDToken(idToken string) string {
	if idToken == "" {
		return ""
	}
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
