package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/communities-choice/portal-auth/internal/domain"
)

// ErrInvalidToken covers every verification failure. Malformed input,
// a bad signature and an expired token are deliberately not
// distinguishable to callers.
var ErrInvalidToken = errors.New("invalid session token")

// Signer issues and verifies signed session tokens. Sessions are fully
// stateless: validity is determined by the token's own signature and
// embedded expiry, never by server-side storage.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner builds a signer from the HMAC secret and session lifetime.
// A non-positive ttl issues tokens that are already expired; the
// default lifetime is applied by config, not here.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Claims is the token payload: the profile plus issue and expiry times
// in unix seconds. The claim keys match the original portal worker so
// tokens interoperate under a shared secret.
type Claims struct {
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Area      string      `json:"area"`
	Role      domain.Role `json:"role"`
	IssuedAt  int64       `json:"iat"`
	ExpiresAt int64       `json:"exp,omitempty"`
}

// Profile returns the identity embedded in the claims.
func (c Claims) Profile() domain.Profile {
	return domain.Profile{
		Username: c.Username,
		Name:     c.Name,
		Area:     c.Area,
		Role:     c.Role,
	}
}

// Issue builds a token for the profile: two dot-joined, unpadded,
// URL-safe base64 segments. Segment 1 encodes the claims JSON; segment 2
// is HMAC-SHA256 over the encoded segment-1 text.
func (s *Signer) Issue(profile domain.Profile) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Username:  profile.Username,
		Name:      profile.Name,
		Area:      profile.Area,
		Role:      profile.Role,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", time.Time{}, err
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	sig := s.sign(encoded)
	return encoded + "." + base64.RawURLEncoding.EncodeToString(sig), expiresAt, nil
}

// Verify checks shape, signature and expiry, returning the embedded
// profile. Every gate collapses to ErrInvalidToken.
func (s *Signer) Verify(token string) (*domain.Profile, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrInvalidToken
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}
	// hmac.Equal compares in constant time; decoded bytes are compared
	// rather than the encoded text to rule out encoding-variant bypass.
	if !hmac.Equal(sig, s.sign(parts[0])) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	// A payload without an expiry claim never expires.
	if claims.ExpiresAt != 0 && claims.ExpiresAt < time.Now().Unix() {
		return nil, ErrInvalidToken
	}

	profile := claims.Profile()
	return &profile, nil
}

func (s *Signer) sign(encodedPayload string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encodedPayload))
	return mac.Sum(nil)
}
