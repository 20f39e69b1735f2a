package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communities-choice/portal-auth/internal/domain"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "members.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileDirectoryLoads(t *testing.T) {
	path := writeRoster(t, `[
		{"username": "klang", "name": "Karen Lang", "area": "Blaenavon", "role": "member"},
		{"username": "tvaadmin", "name": "TVA Admin", "area": "ALL", "role": "admin"}
	]`)

	dir, err := NewFileDirectory(path)
	require.NoError(t, err)

	profile, err := dir.Lookup(context.Background(), "KLang")
	require.NoError(t, err)
	assert.Equal(t, "Karen Lang", profile.Name)
}

func TestFileDirectoryDefaultsRoleAndArea(t *testing.T) {
	path := writeRoster(t, `[{"username": "newbie", "name": "New Member"}]`)

	dir, err := NewFileDirectory(path)
	require.NoError(t, err)

	profile, err := dir.Lookup(context.Background(), "newbie")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, profile.Role)
	assert.Equal(t, domain.AreaAll, profile.Area)
}

func TestFileDirectoryRejectsMissingUsername(t *testing.T) {
	path := writeRoster(t, `[{"name": "No Username"}]`)

	_, err := NewFileDirectory(path)
	assert.Error(t, err)
}

func TestFileDirectoryRejectsBadJSON(t *testing.T) {
	path := writeRoster(t, `{not json`)

	_, err := NewFileDirectory(path)
	assert.Error(t, err)
}

func TestFileDirectoryMissingFile(t *testing.T) {
	_, err := NewFileDirectory(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
