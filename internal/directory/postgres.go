package directory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/communities-choice/portal-auth/internal/domain"
)

// PostgresDirectory serves lookups from the members table. For
// deployments whose roster outgrows a flat file.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory returns a Postgres-backed implementation.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

// Lookup implements Directory.
func (d *PostgresDirectory) Lookup(ctx context.Context, username string) (*domain.Profile, error) {
	const query = `
        SELECT username, name, area, role
        FROM members WHERE username = $1`

	var profile domain.Profile
	if err := d.pool.QueryRow(ctx, query, normalize(username)).Scan(
		&profile.Username,
		&profile.Name,
		&profile.Area,
		&profile.Role,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
