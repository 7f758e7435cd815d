package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-connectors/core"
)

const linkedUserCacheKeyPrefix = "go-connectors::linked_user::v1"

// CachedLinkedUserStore fronts linked-user point lookups with a cache
// service. Misses are cached too: the origin lookup runs on every inbound
// provider event, and an unknown origin stays unknown until AddLinkedUser
// invalidates it.
type CachedLinkedUserStore struct {
	base  core.LinkedUserStore
	cache repositorycache.CacheService
}

type cachedLinkedUserLookup struct {
	User  core.LinkedUser
	Found bool
}

func NewCachedLinkedUserStore(
	base core.LinkedUserStore,
	cacheService repositorycache.CacheService,
) (*CachedLinkedUserStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base linked user store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: linked user cache service is required")
	}
	return &CachedLinkedUserStore{base: base, cache: cacheService}, nil
}

// LinkedUserCacheKey returns the deterministic cache key contract for
// linked-user reads: go-connectors::linked_user::v1::<kind>::<value>
// with the value URL-path escaped after trimming.
func LinkedUserCacheKey(kind string, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: linked user cache key value is required")
	}
	return strings.Join(
		[]string{linkedUserCacheKeyPrefix, kind, url.PathEscape(trimmed)},
		"::",
	), nil
}

func (s *CachedLinkedUserStore) Add(ctx context.Context, in core.AddLinkedUserInput) (core.LinkedUser, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.LinkedUser{}, fmt.Errorf("sqlstore: cached linked user store is not configured")
	}

	created, err := s.base.Add(ctx, in)
	if err != nil {
		return core.LinkedUser{}, err
	}

	// A lookup for this origin may be cached as a miss.
	originKey, err := LinkedUserCacheKey("origin", created.OriginID)
	if err != nil {
		return core.LinkedUser{}, err
	}
	if err := s.cache.Delete(ctx, originKey); err != nil {
		return core.LinkedUser{}, err
	}
	idKey, err := LinkedUserCacheKey("id", created.ID)
	if err != nil {
		return core.LinkedUser{}, err
	}
	if err := s.cache.Delete(ctx, idKey); err != nil {
		return core.LinkedUser{}, err
	}
	return created, nil
}

func (s *CachedLinkedUserStore) Get(ctx context.Context, id string) (core.LinkedUser, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.LinkedUser{}, false, fmt.Errorf("sqlstore: cached linked user store is not configured")
	}
	cacheKey, err := LinkedUserCacheKey("id", id)
	if err != nil {
		return core.LinkedUser{}, false, err
	}

	lookup, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedLinkedUserLookup, error) {
		user, found, fetchErr := s.base.Get(ctx, id)
		if fetchErr != nil {
			return cachedLinkedUserLookup{}, fetchErr
		}
		return cachedLinkedUserLookup{User: cloneLinkedUser(user), Found: found}, nil
	})
	if err != nil {
		return core.LinkedUser{}, false, err
	}
	return cloneLinkedUser(lookup.User), lookup.Found, nil
}

func (s *CachedLinkedUserStore) GetByOrigin(ctx context.Context, originID string) (core.LinkedUser, bool, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.LinkedUser{}, false, fmt.Errorf("sqlstore: cached linked user store is not configured")
	}
	cacheKey, err := LinkedUserCacheKey("origin", originID)
	if err != nil {
		return core.LinkedUser{}, false, err
	}

	lookup, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (cachedLinkedUserLookup, error) {
		user, found, fetchErr := s.base.GetByOrigin(ctx, originID)
		if fetchErr != nil {
			return cachedLinkedUserLookup{}, fetchErr
		}
		return cachedLinkedUserLookup{User: cloneLinkedUser(user), Found: found}, nil
	})
	if err != nil {
		return core.LinkedUser{}, false, err
	}
	return cloneLinkedUser(lookup.User), lookup.Found, nil
}

// ListByProject is a bulk read; it goes straight to the base store.
func (s *CachedLinkedUserStore) ListByProject(ctx context.Context, projectID string) ([]core.LinkedUser, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached linked user store is not configured")
	}
	return s.base.ListByProject(ctx, projectID)
}

func cloneLinkedUser(user core.LinkedUser) core.LinkedUser {
	cloned := user
	cloned.Metadata = copyAnyMap(user.Metadata)
	return cloned
}
