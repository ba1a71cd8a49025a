// Package cached wraps the Postgres repositories in the cache-aside
// contract: reads check the cache first and repopulate it on miss,
// writes go straight to the store and then drop the entity's whole
// cache namespace. Only members and events get a decorator; every
// other family reads live.
package cached

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"tenf-admin-go/internal/cache"
	"tenf-admin-go/internal/config"
	memberdomain "tenf-admin-go/internal/domain/member"
)

const (
	MembersNamespace = "members"
	EventsNamespace  = "events"
)

type MemberRepository struct {
	inner memberdomain.Repository
	cache cache.Client
	ttl   config.CacheConfig
	group singleflight.Group
}

func NewMemberRepository(inner memberdomain.Repository, cacheClient cache.Client, ttl config.CacheConfig) *MemberRepository {
	return &MemberRepository{inner: inner, cache: cacheClient, ttl: ttl}
}

func (r *MemberRepository) FindAll(ctx context.Context, limit, offset int) ([]memberdomain.Member, error) {
	key := cache.Key(MembersNamespace, "find_all", pageKey(limit, offset))
	return r.cachedList(ctx, key, r.ttl.MembersAllTTL, func() ([]memberdomain.Member, error) {
		return r.inner.FindAll(ctx, limit, offset)
	})
}

func (r *MemberRepository) FindActive(ctx context.Context, limit, offset int) ([]memberdomain.Member, error) {
	key := cache.Key(MembersNamespace, "find_active", pageKey(limit, offset))
	return r.cachedList(ctx, key, r.ttl.MembersActiveTTL, func() ([]memberdomain.Member, error) {
		return r.inner.FindActive(ctx, limit, offset)
	})
}

func (r *MemberRepository) FindVips(ctx context.Context, limit, offset int) ([]memberdomain.Member, error) {
	key := cache.Key(MembersNamespace, "find_vips", pageKey(limit, offset))
	return r.cachedList(ctx, key, r.ttl.MembersVipsTTL, func() ([]memberdomain.Member, error) {
		return r.inner.FindVips(ctx, limit, offset)
	})
}

func (r *MemberRepository) FindByTwitchLogin(ctx context.Context, login string) (*memberdomain.Member, error) {
	key := cache.Key(MembersNamespace, "by_login", login)

	var hit memberdomain.Member
	if r.cache.Get(ctx, key, &hit) {
		return &hit, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		found, err := r.inner.FindByTwitchLogin(ctx, login)
		if err != nil {
			return nil, err
		}
		// Absent rows are not cached: a lookup for a login that gets
		// created moments later must see the new row.
		if found != nil {
			r.cache.SetWithNamespace(ctx, MembersNamespace, key, found, r.ttl.MemberByLoginTTL)
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*memberdomain.Member), nil
}

func (r *MemberRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	if err := r.inner.Create(ctx, m); err != nil {
		return err
	}
	r.cache.InvalidateNamespace(ctx, MembersNamespace)
	return nil
}

func (r *MemberRepository) Update(ctx context.Context, login string, patch memberdomain.UpdateInput) (*memberdomain.Member, error) {
	updated, err := r.inner.Update(ctx, login, patch)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidateNamespace(ctx, MembersNamespace)
	return updated, nil
}

func (r *MemberRepository) ReplaceBadges(ctx context.Context, login string, badges []string) (*memberdomain.Member, error) {
	updated, err := r.inner.ReplaceBadges(ctx, login, badges)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidateNamespace(ctx, MembersNamespace)
	return updated, nil
}

// cachedList is the uniform read path: cache hit wins with no freshness
// re-check, misses collapse through singleflight, the store result is
// written back best-effort.
func (r *MemberRepository) cachedList(ctx context.Context, key string, ttl time.Duration, load func() ([]memberdomain.Member, error)) ([]memberdomain.Member, error) {
	var cached []memberdomain.Member
	if r.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		rows, err := load()
		if err != nil {
			return nil, err
		}
		r.cache.SetWithNamespace(ctx, MembersNamespace, key, rows, ttl)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]memberdomain.Member), nil
}

func pageKey(limit, offset int) string {
	return fmt.Sprintf("limit=%d:offset=%d", limit, offset)
}
