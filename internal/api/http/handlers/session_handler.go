package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/communities-choice/portal-auth/internal/api/dto"
	"github.com/communities-choice/portal-auth/internal/config"
	"github.com/communities-choice/portal-auth/internal/domain"
	"github.com/communities-choice/portal-auth/internal/observability"
	"github.com/communities-choice/portal-auth/internal/service"
	"github.com/communities-choice/portal-auth/internal/session"
	apperrors "github.com/communities-choice/portal-auth/pkg/util"
)

// SessionHandler exposes the login, me and logout endpoints.
type SessionHandler struct {
	auth    *service.AuthService
	session config.SessionConfig
	metrics *observability.Metrics
}

// NewSessionHandler constructs handler.
func NewSessionHandler(authService *service.AuthService, sessionCfg config.SessionConfig, metrics *observability.Metrics) *SessionHandler {
	return &SessionHandler{auth: authService, session: sessionCfg, metrics: metrics}
}

// Login handles POST /api/login. On success the token travels on both
// channels: as the session cookie and in the response body.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	// An unparseable body is treated as empty credentials, which fail
	// the missing-fields gate below.
	var req dto.LoginRequest
	_ = c.BodyParser(&req)

	profile, token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordLogin("failure")
		return err
	}
	h.metrics.RecordLogin("success")

	session.SetCookie(c, h.session.CookieName, token, h.session.TTL())
	return c.Status(http.StatusOK).JSON(dto.LoginResponse{
		SessionResponse: profileResponse(profile),
		Token:           token,
	})
}

// Me handles GET /api/me via the dual-channel session rule.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	profile, ok := h.auth.CurrentSession(c.Get(fiber.HeaderCookie), c.Get(fiber.HeaderAuthorization))
	if !ok {
		h.metrics.RecordSessionResolution("rejected")
		return apperrors.NewUnauthorized("no valid session")
	}
	h.metrics.RecordSessionResolution("resolved")
	return c.JSON(profileResponse(profile))
}

// Logout handles POST /api/logout. Sessions are stateless, so this
// only instructs the client to drop its cookie; a bearer token captured
// elsewhere stays valid until it expires.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context()); err != nil {
		return err
	}
	session.ClearCookie(c, h.session.CookieName)
	return c.JSON(fiber.Map{"status": "ok"})
}

func profileResponse(p *domain.Profile) dto.SessionResponse {
	return dto.SessionResponse{
		Username: p.Username,
		Name:     p.Name,
		Area:     p.Area,
		Role:     string(p.Role),
	}
}
