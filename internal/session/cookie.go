package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SetCookie attaches the session token to the response. SameSite=None
// because the portal is served from a different origin than this API;
// that in turn requires Secure.
func SetCookie(c *fiber.Ctx, name, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// ClearCookie overwrites the session cookie with an already-expired
// empty value. Fiber's own ClearCookie does not carry the SameSite
// attribute, which some browsers require to match before removing a
// cross-site cookie.
func ClearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
