package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communities-choice/portal-auth/internal/domain"
)

func TestParseRoster(t *testing.T) {
	rows := [][]string{
		{"", "Replit Users Committee", "", "", ""},
		{"", "User", "Area", "Username", "Role"},
		{"", "Karen Lang", "Blaenavon", "klang", ""},
		{"", "Dan Watkins", "ALL", "DWatkins", "Administrator"},
		{"", "Skipped Row", "Penygarn", "", ""},
		{"", "New Member", "", "newbie", ""},
	}

	roster, err := parseRoster(rows)
	require.NoError(t, err)

	byUsername := make(map[string]domain.Profile, len(roster))
	for _, p := range roster {
		byUsername[p.Username] = p
	}

	assert.Equal(t, domain.Profile{
		Username: "klang",
		Name:     "Karen Lang",
		Area:     "Blaenavon",
		Role:     domain.RoleMember,
	}, byUsername["klang"])

	// Usernames are lowercased; "Administrator" maps to admin.
	assert.Equal(t, domain.RoleAdmin, byUsername["dwatkins"].Role)

	// Blank area defaults to the all-areas sentinel.
	assert.Equal(t, domain.AreaAll, byUsername["newbie"].Area)

	// Rows without a username are dropped.
	assert.NotContains(t, byUsername, "")

	// The fallback admin account is appended when absent.
	assert.Equal(t, domain.RoleAdmin, byUsername["tvaadmin"].Role)
}

func TestParseRosterRequiresHeader(t *testing.T) {
	rows := [][]string{
		{"", "Karen Lang", "Blaenavon", "klang", ""},
	}

	_, err := parseRoster(rows)
	assert.Error(t, err)
}

func TestParseRosterRejectsDuplicates(t *testing.T) {
	rows := [][]string{
		{"", "User", "Area", "Username", "Role"},
		{"", "Karen Lang", "Blaenavon", "klang", ""},
		{"", "Karen Lang Again", "Penygarn", "KLANG", ""},
	}

	_, err := parseRoster(rows)
	assert.Error(t, err)
}

func TestParseRosterKeepsExistingFallbackAdmins(t *testing.T) {
	rows := [][]string{
		{"", "User", "Area", "Username", "Role"},
		{"", "Dan Watkins", "Blaenavon", "dwatkins", ""},
	}

	roster, err := parseRoster(rows)
	require.NoError(t, err)

	count := 0
	for _, p := range roster {
		if p.Username == "dwatkins" {
			count++
			// The spreadsheet row wins over the fallback entry.
			assert.Equal(t, "Blaenavon", p.Area)
			assert.Equal(t, domain.RoleMember, p.Role)
		}
	}
	assert.Equal(t, 1, count)
}
