package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	// matchScanLimit bounds how many active members the bulk matcher
	// loads for its linear scan.
	matchScanLimit = 1000
)

type ListFilter string

const (
	FilterAll    ListFilter = "all"
	FilterActive ListFilter = "active"
	FilterVips   ListFilter = "vips"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Member, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	switch filter {
	case FilterActive, "":
		return s.repo.FindActive(ctx, limit, offset)
	case FilterVips:
		return s.repo.FindVips(ctx, limit, offset)
	case FilterAll:
		return s.repo.FindAll(ctx, limit, offset)
	default:
		return nil, fmt.Errorf("unknown filter %q", filter)
	}
}

func (s *Service) GetByLogin(ctx context.Context, login string) (*Member, error) {
	login = NormalizeLogin(login)
	if login == "" {
		return nil, ErrInvalidLogin
	}

	found, err := s.repo.FindByTwitchLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrMemberNotFound
	}
	return found, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Member, error) {
	login := NormalizeLogin(input.TwitchLogin)
	if login == "" {
		return nil, ErrInvalidLogin
	}

	role := input.Role
	if role == "" {
		role = RoleMember
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = login
	}

	existing, err := s.repo.FindByTwitchLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	joinedAt := input.JoinedAt
	if joinedAt.IsZero() {
		joinedAt = time.Now().UTC()
	}

	m := Member{
		ID:          uuid.NewString(),
		TwitchLogin: login,
		DisplayName: displayName,
		Role:        role,
		Badges:      []string{},
		IsActive:    true,
		JoinedAt:    joinedAt,
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, login string, patch UpdateInput) (*Member, error) {
	login = NormalizeLogin(login)
	if login == "" {
		return nil, ErrInvalidLogin
	}
	if patch.Role != nil && !validRole(*patch.Role) {
		return nil, ErrInvalidRole
	}
	if patch.DisplayName != nil {
		trimmed := strings.TrimSpace(*patch.DisplayName)
		patch.DisplayName = &trimmed
	}
	return s.repo.Update(ctx, login, patch)
}

// Deactivate is the only delete members get: the row stays, the flag flips.
func (s *Service) Deactivate(ctx context.Context, login string) (*Member, error) {
	inactive := false
	return s.Update(ctx, login, UpdateInput{IsActive: &inactive})
}

func (s *Service) SetVip(ctx context.Context, login string, vip bool) (*Member, error) {
	return s.Update(ctx, login, UpdateInput{IsVip: &vip})
}

func (s *Service) AddBadge(ctx context.Context, login, badge string) (*Member, error) {
	badge = strings.TrimSpace(badge)
	if badge == "" {
		return nil, fmt.Errorf("badge is required")
	}

	current, err := s.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	for _, existing := range current.Badges {
		if existing == badge {
			return current, nil
		}
	}
	return s.repo.ReplaceBadges(ctx, current.TwitchLogin, append(current.Badges, badge))
}

func (s *Service) RemoveBadge(ctx context.Context, login, badge string) (*Member, error) {
	current, err := s.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(current.Badges))
	for _, existing := range current.Badges {
		if existing != badge {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(current.Badges) {
		return current, nil
	}
	return s.repo.ReplaceBadges(ctx, current.TwitchLogin, kept)
}

// MatchLogins resolves raw login strings (as pasted into the bulk VIP and
// raid tools) against the active member list. Inputs are normalized, then
// matched exactly; anything left over gets one linear prefix scan.
func (s *Service) MatchLogins(ctx context.Context, raw []string) (*MatchReport, error) {
	members, err := s.repo.FindActive(ctx, matchScanLimit, 0)
	if err != nil {
		return nil, err
	}

	byLogin := make(map[string]*Member, len(members))
	for i := range members {
		byLogin[members[i].TwitchLogin] = &members[i]
	}

	report := &MatchReport{Matched: []Match{}, Unmatched: []string{}}
	seen := make(map[string]struct{}, len(raw))

	for _, input := range raw {
		login := NormalizeLogin(input)
		if login == "" {
			continue
		}
		if _, dup := seen[login]; dup {
			continue
		}
		seen[login] = struct{}{}

		if m, ok := byLogin[login]; ok {
			report.Matched = append(report.Matched, Match{Input: input, Member: *m, Exact: true})
			continue
		}

		if m := prefixMatch(members, login); m != nil {
			report.Matched = append(report.Matched, Match{Input: input, Member: *m, Exact: false})
			continue
		}

		report.Unmatched = append(report.Unmatched, input)
	}

	return report, nil
}

// prefixMatch returns the single active member whose login starts with
// the normalized input. Ambiguous prefixes match nothing.
func prefixMatch(members []Member, login string) *Member {
	var found *Member
	for i := range members {
		if strings.HasPrefix(members[i].TwitchLogin, login) {
			if found != nil {
				return nil
			}
			found = &members[i]
		}
	}
	return found
}

func validRole(role string) bool {
	switch role {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
