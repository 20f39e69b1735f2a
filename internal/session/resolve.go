package session

import (
	"strings"

	"github.com/communities-choice/portal-auth/internal/domain"
)

// Resolver recovers a session from either transport channel: the named
// session cookie, or an Authorization bearer header carrying the same
// token format. The cookie wins when both are present and valid; the
// bearer fallback exists for browsers that block cross-site cookies.
type Resolver struct {
	signer     *Signer
	cookieName string
}

// NewResolver builds a resolver around the signer and cookie name.
func NewResolver(signer *Signer, cookieName string) *Resolver {
	return &Resolver{signer: signer, cookieName: cookieName}
}

// Resolve verifies the cookie token first, then the bearer token. It
// operates on raw header values so it needs no HTTP framework.
func (r *Resolver) Resolve(cookieHeader, authHeader string) (*domain.Profile, bool) {
	if token := cookieValue(cookieHeader, r.cookieName); token != "" {
		if profile, err := r.signer.Verify(token); err == nil {
			return profile, true
		}
	}

	if token := bearerToken(authHeader); token != "" {
		if profile, err := r.signer.Verify(token); err == nil {
			return profile, true
		}
	}

	return nil, false
}

// cookieValue extracts the named cookie from a raw Cookie header.
func cookieValue(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(part, name+"="); ok {
			return rest
		}
	}
	return ""
}

// bearerToken extracts the token after a case-insensitive "Bearer "
// prefix.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
