package cached

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenf-admin-go/internal/cache"
	"tenf-admin-go/internal/config"
	memberdomain "tenf-admin-go/internal/domain/member"
	"tenf-admin-go/pkg/logger"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		MembersActiveTTL:   5 * time.Minute,
		MembersVipsTTL:     5 * time.Minute,
		MembersAllTTL:      10 * time.Minute,
		MemberByLoginTTL:   5 * time.Minute,
		EventsAllTTL:       5 * time.Minute,
		EventsPublishedTTL: 2 * time.Minute,
		EventByIDTTL:       2 * time.Minute,
	}
}

func newTestCache(t *testing.T) (cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.New(rdb, "tenf", logger.NewNop()), mr
}

// fakeMemberStore is an in-memory stand-in for the Postgres repository
// that counts how many queries actually reach the store.
type fakeMemberStore struct {
	mu      sync.Mutex
	members []memberdomain.Member
	queries int
}

func (s *fakeMemberStore) queryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

func (s *fakeMemberStore) FindAll(_ context.Context, limit, offset int) ([]memberdomain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	return window(s.members, limit, offset), nil
}

func (s *fakeMemberStore) FindActive(_ context.Context, limit, offset int) ([]memberdomain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	var active []memberdomain.Member
	for _, m := range s.members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return window(active, limit, offset), nil
}

func (s *fakeMemberStore) FindVips(_ context.Context, limit, offset int) ([]memberdomain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	var vips []memberdomain.Member
	for _, m := range s.members {
		if m.IsVip && m.IsActive {
			vips = append(vips, m)
		}
	}
	return window(vips, limit, offset), nil
}

func (s *fakeMemberStore) FindByTwitchLogin(_ context.Context, login string) (*memberdomain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	for i := range s.members {
		if s.members[i].TwitchLogin == login {
			m := s.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (s *fakeMemberStore) Create(_ context.Context, m *memberdomain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	s.members = append(s.members, *m)
	return nil
}

func (s *fakeMemberStore) Update(_ context.Context, login string, patch memberdomain.UpdateInput) (*memberdomain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	for i := range s.members {
		if s.members[i].TwitchLogin != login {
			continue
		}
		if patch.DisplayName != nil {
			s.members[i].DisplayName = *patch.DisplayName
		}
		if patch.Role != nil {
			s.members[i].Role = *patch.Role
		}
		if patch.IsVip != nil {
			s.members[i].IsVip = *patch.IsVip
		}
		if patch.IsActive != nil {
			s.members[i].IsActive = *patch.IsActive
		}
		m := s.members[i]
		return &m, nil
	}
	return nil, memberdomain.ErrMemberNotFound
}

func (s *fakeMemberStore) ReplaceBadges(_ context.Context, login string, badges []string) (*memberdomain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	for i := range s.members {
		if s.members[i].TwitchLogin != login {
			continue
		}
		s.members[i].Badges = badges
		m := s.members[i]
		return &m, nil
	}
	return nil, memberdomain.ErrMemberNotFound
}

func window(rows []memberdomain.Member, limit, offset int) []memberdomain.Member {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	out := make([]memberdomain.Member, len(rows))
	copy(out, rows)
	return out
}

func member(login string, active, vip bool) memberdomain.Member {
	return memberdomain.Member{
		ID:          "id-" + login,
		TwitchLogin: login,
		DisplayName: login,
		Role:        memberdomain.RoleMember,
		IsActive:    active,
		IsVip:       vip,
		JoinedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemberFindActiveReadThrough(t *testing.T) {
	c, _ := newTestCache(t)
	store := &fakeMemberStore{members: []memberdomain.Member{
		member("nexou31", true, false),
		member("zelyph", true, true),
		member("oldtimer", false, false),
	}}
	repo := NewMemberRepository(store, c, testCacheConfig())
	ctx := context.Background()

	first, err := repo.FindActive(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, store.queryCount())

	// Second identical read is served from the cache.
	second, err := repo.FindActive(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.queryCount())
}

func TestMemberUpdateInvalidatesLists(t *testing.T) {
	c, _ := newTestCache(t)
	store := &fakeMemberStore{members: []memberdomain.Member{
		member("nexou31", true, false),
		member("zelyph", true, true),
	}}
	repo := NewMemberRepository(store, c, testCacheConfig())
	ctx := context.Background()

	before, err := repo.FindActive(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, before, 2)

	inactive := false
	_, err = repo.Update(ctx, "nexou31", memberdomain.UpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	// The deactivation must be visible immediately, not after TTL expiry.
	after, err := repo.FindActive(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, after, 1)
	for _, m := range after {
		assert.NotEqual(t, "nexou31", m.TwitchLogin)
	}
}

func TestMemberCreateInvalidatesLists(t *testing.T) {
	c, _ := newTestCache(t)
	store := &fakeMemberStore{members: []memberdomain.Member{member("zelyph", true, false)}}
	repo := NewMemberRepository(store, c, testCacheConfig())
	ctx := context.Background()

	all, err := repo.FindAll(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)

	created := member("newbie", true, false)
	require.NoError(t, repo.Create(ctx, &created))

	all, err = repo.FindAll(ctx, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemberFindByLoginCachesOnlyHits(t *testing.T) {
	c, _ := newTestCache(t)
	store := &fakeMemberStore{members: []memberdomain.Member{member("nexou31", true, false)}}
	repo := NewMemberRepository(store, c, testCacheConfig())
	ctx := context.Background()

	found, err := repo.FindByTwitchLogin(ctx, "nexou31")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, store.queryCount())

	found, err = repo.FindByTwitchLogin(ctx, "nexou31")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, store.queryCount())

	// Absent rows are not cached, so every miss goes to the store.
	missing, err := repo.FindByTwitchLogin(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, 2, store.queryCount())

	missing, err = repo.FindByTwitchLogin(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.Equal(t, 3, store.queryCount())
}

func TestMemberPaginationKeysDoNotCollide(t *testing.T) {
	c, _ := newTestCache(t)
	store := &fakeMemberStore{members: []memberdomain.Member{
		member("a", true, false),
		member("b", true, false),
		member("c", true, false),
	}}
	repo := NewMemberRepository(store, c, testCacheConfig())
	ctx := context.Background()

	page1, err := repo.FindAll(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page2, err := repo.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, 2, store.queryCount())

	// No overlap between pages, even with both served from cache now.
	page1Again, err := repo.FindAll(ctx, 2, 0)
	require.NoError(t, err)
	page2Again, err := repo.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, store.queryCount())

	seen := map[string]bool{}
	for _, m := range append(page1Again, page2Again...) {
		assert.False(t, seen[m.TwitchLogin], "login %s served on two pages", m.TwitchLogin)
		seen[m.TwitchLogin] = true
	}
	assert.Len(t, seen, 3)
}

func TestMemberCacheHitSkipsFreshnessCheck(t *testing.T) {
	c, _ := newTestCache(t)
	store := &fakeMemberStore{members: []memberdomain.Member{member("nexou31", true, false)}}
	repo := NewMemberRepository(store, c, testCacheConfig())
	ctx := context.Background()

	_, err := repo.FindActive(ctx, 50, 0)
	require.NoError(t, err)

	// Mutate the store behind the decorator's back. A cached read must
	// keep returning the stale entry until something invalidates it.
	store.mu.Lock()
	store.members[0].IsActive = false
	store.mu.Unlock()

	stale, err := repo.FindActive(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "nexou31", stale[0].TwitchLogin)
}

func TestMemberNoopCacheAlwaysHitsStore(t *testing.T) {
	store := &fakeMemberStore{members: []memberdomain.Member{member("nexou31", true, false)}}
	repo := NewMemberRepository(store, cache.Noop{}, testCacheConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rows, err := repo.FindActive(ctx, 50, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}
	assert.Equal(t, 3, store.queryCount())
}
