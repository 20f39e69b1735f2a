package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "portal-auth", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())

	assert.Equal(t, "change-me", cfg.Session.Secret)
	assert.Equal(t, "cc_session", cfg.Session.CookieName)
	assert.Equal(t, 30, cfg.Session.TTLDays)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, "password1", cfg.Session.SharedPassword)
	assert.Empty(t, cfg.Session.SharedPasswordHash)

	assert.Equal(t, RosterSourceStatic, cfg.Roster.Source)
	assert.Zero(t, cfg.Roster.CacheTTL())
	assert.Empty(t, cfg.CORS.AllowedOrigin)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COOKIE_SECRET", "prod-secret")
	t.Setenv("ALLOWED_ORIGIN", "https://portal.example.org")
	t.Setenv("SESSION_TTL_DAYS", "7")
	t.Setenv("SESSION_COOKIE_NAME", "portal_session")
	t.Setenv("ROSTER_SOURCE", "file")
	t.Setenv("ROSTER_PATH", "/etc/portal/members.json")
	t.Setenv("DIRECTORY_CACHE_TTL_SECONDS", "120")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod-secret", cfg.Session.Secret)
	assert.Equal(t, "https://portal.example.org", cfg.CORS.AllowedOrigin)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL())
	assert.Equal(t, "portal_session", cfg.Session.CookieName)
	assert.Equal(t, RosterSourceFile, cfg.Roster.Source)
	assert.Equal(t, "/etc/portal/members.json", cfg.Roster.Path)
	assert.Equal(t, 2*time.Minute, cfg.Roster.CacheTTL())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadRejectsInvalidRosterSource(t *testing.T) {
	t.Setenv("ROSTER_SOURCE", "ldap")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadClampsNonPositiveTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_DAYS", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Session.TTLDays)
}

func TestLoadIgnoresUnparseableInts(t *testing.T) {
	t.Setenv("SESSION_TTL_DAYS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Session.TTLDays)
}
