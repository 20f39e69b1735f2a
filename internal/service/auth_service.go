package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/communities-choice/portal-auth/internal/config"
	"github.com/communities-choice/portal-auth/internal/directory"
	"github.com/communities-choice/portal-auth/internal/domain"
	"github.com/communities-choice/portal-auth/internal/session"
	apperrors "github.com/communities-choice/portal-auth/pkg/util"
)

// AuthService coordinates the login flow: shared-password check,
// directory lookup, token issuance. It holds no mutable state, so it is
// safe for concurrent requests.
type AuthService struct {
	directory directory.Directory
	signer    *session.Signer
	resolver  *session.Resolver

	sharedPassword     string
	sharedPasswordHash string
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	Directory directory.Directory
}

// NewAuthService builds the service from configuration.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	signer := session.NewSigner(cfg.Session.Secret, cfg.Session.TTL())
	return &AuthService{
		directory:          deps.Directory,
		signer:             signer,
		resolver:           session.NewResolver(signer, cfg.Session.CookieName),
		sharedPassword:     cfg.Session.SharedPassword,
		sharedPasswordHash: cfg.Session.SharedPasswordHash,
	}
}

// Login authenticates the shared password, resolves the username in the
// directory and issues a session token. The security boundary is "knows
// the shared password"; identity comes from the username alone.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Profile, string, time.Time, error) {
	if username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewMissingCredentials()
	}

	if !s.passwordMatches(password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	profile, err := s.directory.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			// Same wire error as a wrong password: callers must not be
			// able to probe which usernames exist.
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.signer.Issue(*profile)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, expiresAt, nil
}

// CurrentSession resolves a profile from the raw Cookie and
// Authorization header values, cookie first.
func (s *AuthService) CurrentSession(cookieHeader, authHeader string) (*domain.Profile, bool) {
	return s.resolver.Resolve(cookieHeader, authHeader)
}

// Logout is a no-op server-side: sessions are stateless, so revocation
// is limited to clearing the client's cookie at the transport layer.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

func (s *AuthService) passwordMatches(password string) bool {
	if s.sharedPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.sharedPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.sharedPassword)) == 1
}
