// Package session derives the user identity from a session token issued by
// the external identity provider. The token is treated as opaque credential
// material: it is mined for its subject claim but never verified here.
// Verification is the provider's job, and the backend accepts the bare user
// identifier.
package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AnonymousUserID is the identity used when no session token is available.
const AnonymousUserID = "anonymous"

// Identity is the stable user identifier plus the raw token it came from.
type Identity struct {
	UserID string
	Token  string
}

// Anonymous reports whether the identity is the signed-out fallback.
func (i Identity) Anonymous() bool {
	return i.UserID == AnonymousUserID
}

// FromToken extracts the subject claim from a session token. An empty,
// malformed, or subject-less token yields the anonymous identity; the raw
// token is preserved either way so it can be cached and retried after the
// provider rotates formats.
func FromToken(token string) Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{UserID: AnonymousUserID}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{UserID: AnonymousUserID, Token: token}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{UserID: AnonymousUserID, Token: token}
	}
	return Identity{UserID: sub, Token: token}
}
