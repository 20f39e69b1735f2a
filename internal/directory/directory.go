package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/communities-choice/portal-auth/internal/domain"
)

// ErrNotFound is returned when no member matches the username.
var ErrNotFound = errors.New("member not found")

// Directory maps a username to a committee-member profile. Lookups are
// case-insensitive on username. Implementations are read-only; the
// roster is populated by an offline conversion step.
type Directory interface {
	Lookup(ctx context.Context, username string) (*domain.Profile, error)
}

// normalize is the canonical username form used by every implementation.
func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
