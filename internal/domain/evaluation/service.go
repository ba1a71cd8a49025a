package evaluation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	memberdomain "tenf-admin-go/internal/domain/member"
)

const (
	DefaultListLimit = 24
	MaxListLimit     = 120

	MinScore = 0
	MaxScore = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) History(ctx context.Context, login string, limit, offset int) ([]Evaluation, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByLogin(ctx, login, limit, offset)
}

func (s *Service) Get(ctx context.Context, login, month string) (*Evaluation, error) {
	login = memberdomain.NormalizeLogin(login)
	month, err := normalizeMonth(month)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.FindByLoginAndMonth(ctx, login, month)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrEvaluationNotFound
	}
	return found, nil
}

// Score records or replaces the evaluation for (login, month).
func (s *Service) Score(ctx context.Context, login, month string, score int, notes string) (*Evaluation, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}
	month, err := normalizeMonth(month)
	if err != nil {
		return nil, err
	}
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}

	e := Evaluation{
		ID:          uuid.NewString(),
		TwitchLogin: login,
		Month:       month,
		Score:       score,
		Notes:       strings.TrimSpace(notes),
	}
	if err := s.repo.Upsert(ctx, &e); err != nil {
		return nil, err
	}

	// The conflict path updates the existing row and keeps its ID, so the
	// fresh struct above may carry an ID that was never written.
	stored, err := s.repo.FindByLoginAndMonth(ctx, login, month)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return &e, nil
	}
	return stored, nil
}

func (s *Service) Delete(ctx context.Context, login, month string) error {
	login = memberdomain.NormalizeLogin(login)
	month, err := normalizeMonth(month)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, login, month)
}

func (s *Service) Average(ctx context.Context, login string) (float64, int64, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return 0, 0, memberdomain.ErrInvalidLogin
	}
	return s.repo.AverageScore(ctx, login)
}

// normalizeMonth accepts "2026-08" or "2026-08-14" and reduces both to
// the canonical "2026-08-01" row key.
func normalizeMonth(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01", value); err == nil {
		return MonthKey(t), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return MonthKey(t), nil
	}
	return "", ErrInvalidMonth
}
