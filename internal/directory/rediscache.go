package directory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/communities-choice/portal-auth/internal/domain"
)

const cacheKeyPrefix = "portal-auth:member:"

// CachedDirectory is a read-through Redis cache over another
// Directory. Misses in the backing directory are not cached, so an
// unknown username always consults the source of truth.
type CachedDirectory struct {
	inner  Directory
	client *redis.Client
	ttl    time.Duration
}

// NewCachedDirectory wraps inner with a TTL-bounded profile cache.
func NewCachedDirectory(inner Directory, client *redis.Client, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{inner: inner, client: client, ttl: ttl}
}

// Lookup implements Directory. Cache failures fall through to the
// backing directory rather than failing the lookup.
func (d *CachedDirectory) Lookup(ctx context.Context, username string) (*domain.Profile, error) {
	key := cacheKeyPrefix + normalize(username)

	if data, err := d.client.Get(ctx, key).Bytes(); err == nil {
		var profile domain.Profile
		if err := json.Unmarshal(data, &profile); err == nil {
			return &profile, nil
		}
	}

	profile, err := d.inner.Lookup(ctx, username)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		_ = d.client.Set(ctx, key, data, d.ttl).Err()
	}
	return profile, nil
}
