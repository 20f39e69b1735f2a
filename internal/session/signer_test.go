package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communities-choice/portal-auth/internal/domain"
)

var testProfile = domain.Profile{
	Username: "klang",
	Name:     "Karen Lang",
	Area:     "Blaenavon",
	Role:     domain.RoleMember,
}

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("test-secret", 30*24*time.Hour)

	token, expiresAt, err := signer.Issue(testProfile)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	profile, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testProfile, *profile)
}

func TestSignerTokenShape(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	token, _, err := signer.Issue(testProfile)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 2)

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)

	var claims Claims
	require.NoError(t, json.Unmarshal(payload, &claims))
	assert.Equal(t, "klang", claims.Username)
	assert.NotZero(t, claims.IssuedAt)
	assert.Equal(t, claims.IssuedAt+3600, claims.ExpiresAt)

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, sig, 32)
}

func TestSignerRejectsWrongSecret(t *testing.T) {
	token, _, err := NewSigner("secret-one", time.Hour).Issue(testProfile)
	require.NoError(t, err)

	_, err = NewSigner("secret-two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignerRejectsExpiredToken(t *testing.T) {
	signer := NewSigner("test-secret", -time.Second)

	token, _, err := signer.Issue(testProfile)
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignerAcceptsTokenWithoutExpiry(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	// Mint a payload with no exp claim the way the signer would.
	claims := Claims{
		Username: testProfile.Username,
		Name:     testProfile.Name,
		Area:     testProfile.Area,
		Role:     testProfile.Role,
		IssuedAt: time.Now().Unix(),
	}
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	token := encoded + "." + base64.RawURLEncoding.EncodeToString(signer.sign(encoded))

	profile, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testProfile, *profile)
}

func TestSignerRejectsMalformedTokens(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	valid, _, err := signer.Issue(testProfile)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":            "",
		"no separator":     strings.ReplaceAll(valid, ".", ""),
		"two separators":   valid + ".extra",
		"empty payload":    "." + strings.Split(valid, ".")[1],
		"empty signature":  strings.Split(valid, ".")[0] + ".",
		"not base64":       "!!!.###",
		"payload not json": base64.RawURLEncoding.EncodeToString([]byte("hi")) + "." + strings.Split(valid, ".")[1],
		"whole token junk": "garbage",
		"separator only":   ".",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := signer.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSignerRejectsTamperedTokens(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	token, _, err := signer.Issue(testProfile)
	require.NoError(t, err)

	// Flip one character at a time across the whole token. Every
	// mutation must fail verification.
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}

		_, err := signer.Verify(string(mutated))
		assert.ErrorIsf(t, err, ErrInvalidToken, "flipped byte at %d", i)
	}
}

func TestSignerInteroperatesWithPortalWorkerFormat(t *testing.T) {
	// A token in the worker's wire format: unpadded URL-safe base64,
	// HMAC over the encoded payload text, iat/exp claim keys.
	signer := NewSigner("test-secret", time.Hour)

	payload := `{"username":"dwatkins","name":"Dan Watkins","area":"ALL","role":"admin","iat":1700000000,"exp":32503680000}`
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	token := encoded + "." + base64.RawURLEncoding.EncodeToString(signer.sign(encoded))

	profile, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{
		Username: "dwatkins",
		Name:     "Dan Watkins",
		Area:     "ALL",
		Role:     domain.RoleAdmin,
	}, *profile)
}
