package member

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	members []Member
}

func (r *fakeRepo) FindAll(_ context.Context, limit, offset int) ([]Member, error) {
	return slice(r.members, limit, offset), nil
}

func (r *fakeRepo) FindActive(_ context.Context, limit, offset int) ([]Member, error) {
	var active []Member
	for _, m := range r.members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return slice(active, limit, offset), nil
}

func (r *fakeRepo) FindVips(_ context.Context, limit, offset int) ([]Member, error) {
	var vips []Member
	for _, m := range r.members {
		if m.IsVip && m.IsActive {
			vips = append(vips, m)
		}
	}
	return slice(vips, limit, offset), nil
}

func (r *fakeRepo) FindByTwitchLogin(_ context.Context, login string) (*Member, error) {
	for i := range r.members {
		if r.members[i].TwitchLogin == login {
			m := r.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Create(_ context.Context, m *Member) error {
	r.members = append(r.members, *m)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, login string, patch UpdateInput) (*Member, error) {
	for i := range r.members {
		if r.members[i].TwitchLogin != login {
			continue
		}
		if patch.DisplayName != nil {
			r.members[i].DisplayName = *patch.DisplayName
		}
		if patch.Role != nil {
			r.members[i].Role = *patch.Role
		}
		if patch.IsVip != nil {
			r.members[i].IsVip = *patch.IsVip
		}
		if patch.IsActive != nil {
			r.members[i].IsActive = *patch.IsActive
		}
		m := r.members[i]
		return &m, nil
	}
	return nil, ErrMemberNotFound
}

func (r *fakeRepo) ReplaceBadges(_ context.Context, login string, badges []string) (*Member, error) {
	for i := range r.members {
		if r.members[i].TwitchLogin != login {
			continue
		}
		r.members[i].Badges = badges
		m := r.members[i]
		return &m, nil
	}
	return nil, ErrMemberNotFound
}

func slice(rows []Member, limit, offset int) []Member {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func active(login string) Member {
	return Member{
		ID:          "id-" + login,
		TwitchLogin: login,
		DisplayName: login,
		Role:        RoleMember,
		Badges:      []string{},
		IsActive:    true,
		JoinedAt:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeLogin(t *testing.T) {
	assert.Equal(t, "nexou31", NormalizeLogin("  @Nexou31  "))
	assert.Equal(t, "zelyph", NormalizeLogin("ZELYPH"))
	assert.Equal(t, "", NormalizeLogin("  @  "))
}

func TestGetByLoginNormalizes(t *testing.T) {
	svc := NewService(&fakeRepo{members: []Member{active("nexou31")}})

	m, err := svc.GetByLogin(context.Background(), "@Nexou31")
	require.NoError(t, err)
	assert.Equal(t, "nexou31", m.TwitchLogin)
}

func TestGetByLoginNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.GetByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCreateDefaultsAndNormalizes(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), CreateInput{TwitchLogin: "@NewPerson"})
	require.NoError(t, err)
	assert.Equal(t, "newperson", m.TwitchLogin)
	assert.Equal(t, "newperson", m.DisplayName)
	assert.Equal(t, RoleMember, m.Role)
	assert.True(t, m.IsActive)
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.JoinedAt.IsZero())
}

func TestCreateLoginTaken(t *testing.T) {
	svc := NewService(&fakeRepo{members: []Member{active("nexou31")}})

	_, err := svc.Create(context.Background(), CreateInput{TwitchLogin: "Nexou31"})
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), CreateInput{TwitchLogin: "x", Role: "overlord"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestListFilters(t *testing.T) {
	vip := active("zelyph")
	vip.IsVip = true
	inactive := active("oldtimer")
	inactive.IsActive = false
	svc := NewService(&fakeRepo{members: []Member{active("nexou31"), vip, inactive}})
	ctx := context.Background()

	all, err := svc.List(ctx, FilterAll, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	activeOnly, err := svc.List(ctx, FilterActive, 0, 0)
	require.NoError(t, err)
	assert.Len(t, activeOnly, 2)

	// Empty filter defaults to active.
	defaulted, err := svc.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, activeOnly, defaulted)

	vips, err := svc.List(ctx, FilterVips, 0, 0)
	require.NoError(t, err)
	require.Len(t, vips, 1)
	assert.Equal(t, "zelyph", vips[0].TwitchLogin)

	_, err = svc.List(ctx, "bogus", 0, 0)
	assert.Error(t, err)
}

func TestDeactivate(t *testing.T) {
	repo := &fakeRepo{members: []Member{active("nexou31")}}
	svc := NewService(repo)

	m, err := svc.Deactivate(context.Background(), "nexou31")
	require.NoError(t, err)
	assert.False(t, m.IsActive)
}

func TestAddBadgeIsIdempotent(t *testing.T) {
	repo := &fakeRepo{members: []Member{active("nexou31")}}
	svc := NewService(repo)
	ctx := context.Background()

	m, err := svc.AddBadge(ctx, "nexou31", "founder")
	require.NoError(t, err)
	assert.Equal(t, []string{"founder"}, m.Badges)

	m, err = svc.AddBadge(ctx, "nexou31", "founder")
	require.NoError(t, err)
	assert.Equal(t, []string{"founder"}, m.Badges)
}

func TestRemoveBadge(t *testing.T) {
	seeded := active("nexou31")
	seeded.Badges = []string{"founder", "raider"}
	svc := NewService(&fakeRepo{members: []Member{seeded}})

	m, err := svc.RemoveBadge(context.Background(), "nexou31", "founder")
	require.NoError(t, err)
	assert.Equal(t, []string{"raider"}, m.Badges)
}

func TestMatchLogins(t *testing.T) {
	inactive := active("gone_girl")
	inactive.IsActive = false
	svc := NewService(&fakeRepo{members: []Member{
		active("nexou31"),
		active("zelyph"),
		active("zeldafan"),
		inactive,
	}})

	report, err := svc.MatchLogins(context.Background(), []string{
		"@Nexou31",   // exact after normalization
		"zely",       // unique prefix
		"zel",        // ambiguous prefix: zelyph and zeldafan
		"gone_girl",  // inactive, never matched
		"stranger",   // unknown
		"  ",         // blank, dropped
		"nexou31",    // duplicate of the first input
	})
	require.NoError(t, err)

	require.Len(t, report.Matched, 2)
	assert.Equal(t, "nexou31", report.Matched[0].Member.TwitchLogin)
	assert.True(t, report.Matched[0].Exact)
	assert.Equal(t, "zelyph", report.Matched[1].Member.TwitchLogin)
	assert.False(t, report.Matched[1].Exact)

	assert.ElementsMatch(t, []string{"zel", "gone_girl", "stranger"}, report.Unmatched)
}
