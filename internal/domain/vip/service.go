package vip

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	evaluationdomain "tenf-admin-go/internal/domain/evaluation"
	memberdomain "tenf-admin-go/internal/domain/member"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// MemberDirectory is the slice of the member service the VIP flows
// need: read a member, flip the VIP flag. Flipping goes through the
// member layer so the members cache namespace gets invalidated.
type MemberDirectory interface {
	GetByLogin(ctx context.Context, login string) (*memberdomain.Member, error)
	SetVip(ctx context.Context, login string, vip bool) (*memberdomain.Member, error)
}

type Service struct {
	repo    Repository
	members MemberDirectory
}

func NewService(repo Repository, members MemberDirectory) *Service {
	return &Service{repo: repo, members: members}
}

func (s *Service) Grant(ctx context.Context, login, reason string) (*HistoryEntry, error) {
	return s.record(ctx, login, reason, ActionGranted)
}

func (s *Service) Revoke(ctx context.Context, login, reason string) (*HistoryEntry, error) {
	return s.record(ctx, login, reason, ActionRevoked)
}

func (s *Service) record(ctx context.Context, login, reason, action string) (*HistoryEntry, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}

	current, err := s.members.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if action == ActionGranted && current.IsVip {
		return nil, ErrAlreadyVip
	}
	if action == ActionRevoked && !current.IsVip {
		return nil, ErrNotVip
	}

	if _, err := s.members.SetVip(ctx, login, action == ActionGranted); err != nil {
		return nil, err
	}

	entry := HistoryEntry{
		ID:          uuid.NewString(),
		TwitchLogin: login,
		Month:       evaluationdomain.MonthKey(time.Now()),
		Action:      action,
		Reason:      strings.TrimSpace(reason),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) History(ctx context.Context, login string, limit, offset int) ([]HistoryEntry, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}
	limit, offset = clampPage(limit, offset)
	return s.repo.ListByLogin(ctx, login, limit, offset)
}

func (s *Service) MonthReport(ctx context.Context, month time.Time, limit, offset int) ([]HistoryEntry, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListByMonth(ctx, evaluationdomain.MonthKey(month), limit, offset)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
