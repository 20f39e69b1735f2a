package directory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/communities-choice/portal-auth/internal/domain"
)

// NewFileDirectory loads a members.json roster (the rosterconv output
// format) and serves it in-memory.
func NewFileDirectory(path string) (*StaticDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var roster []domain.Profile
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}

	for i, p := range roster {
		if p.Username == "" {
			return nil, fmt.Errorf("roster %s: entry %d has no username", path, i)
		}
		if p.Role == "" {
			roster[i].Role = domain.RoleMember
		}
		if p.Area == "" {
			roster[i].Area = domain.AreaAll
		}
	}

	return NewStaticDirectory(roster), nil
}
