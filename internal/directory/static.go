package directory

import (
	"context"

	"github.com/communities-choice/portal-auth/internal/domain"
)

// defaultRoster is the committee membership shipped with the service.
// Deployments with a changing roster should use the file or postgres
// source instead.
var defaultRoster = []domain.Profile{
	{Username: "tvaadmin", Name: "TVA Admin", Area: "ALL", Role: domain.RoleAdmin},
	{Username: "bpaynter", Name: "Boyd Paynter", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "klang", Name: "Karen Lang", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "lwhite", Name: "Louise White", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "mletch", Name: "Melanie Letch", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "nlewis", Name: "Nigel Lewis", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "scharles", Name: "Sarah J Charles", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "sdavies", Name: "Steffan Davies", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "sford", Name: "Sharon Ford", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "tgardner", Name: "Terry Gardner", Area: "Blaenavon", Role: domain.RoleMember},
	{Username: "aanderson", Name: "Alysha Anderson", Area: "Penygarn", Role: domain.RoleMember},
	{Username: "hdewar", Name: "Heather Dewar", Area: "Penygarn", Role: domain.RoleMember},
	{Username: "jbruton", Name: "John Bruton", Area: "Penygarn", Role: domain.RoleMember},
	{Username: "jcharles", Name: "Joe Charles", Area: "Penygarn", Role: domain.RoleMember},
	{Username: "lbevan", Name: "Leighton Bevan", Area: "Penygarn", Role: domain.RoleMember},
	{Username: "sbradley", Name: "Sarah Bradley", Area: "Penygarn", Role: domain.RoleMember},
	{Username: "brichardson", Name: "Bailey Richardson", Area: "ALL", Role: domain.RoleAdmin},
	{Username: "dwatkins", Name: "Dan Watkins", Area: "ALL", Role: domain.RoleAdmin},
	{Username: "gjenkins", Name: "Gabi Jenkins", Area: "St Cadocs", Role: domain.RoleMember},
	{Username: "mcock", Name: "Mike Cock", Area: "St Cadocs", Role: domain.RoleMember},
	{Username: "sdalby", Name: "Sonia Dalby", Area: "St Cadocs", Role: domain.RoleMember},
	{Username: "sgrudgings", Name: "Sam Grudgings", Area: "Thornhill & Upper Cwmbran", Role: domain.RoleMember},
}

// StaticDirectory serves lookups from an in-memory roster. The map is
// built once at construction and never mutated, so concurrent lookups
// need no locking.
type StaticDirectory struct {
	members map[string]domain.Profile
}

// NewStaticDirectory indexes the given roster by normalized username.
func NewStaticDirectory(roster []domain.Profile) *StaticDirectory {
	members := make(map[string]domain.Profile, len(roster))
	for _, p := range roster {
		members[normalize(p.Username)] = p
	}
	return &StaticDirectory{members: members}
}

// NewDefaultDirectory returns the built-in roster.
func NewDefaultDirectory() *StaticDirectory {
	return NewStaticDirectory(defaultRoster)
}

// Lookup implements Directory.
func (d *StaticDirectory) Lookup(_ context.Context, username string) (*domain.Profile, error) {
	profile, ok := d.members[normalize(username)]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}
