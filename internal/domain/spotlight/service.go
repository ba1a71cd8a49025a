package spotlight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	memberdomain "tenf-admin-go/internal/domain/member"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	MinScore = 1
	MaxScore = 5
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Active(ctx context.Context) (*Spotlight, error) {
	active, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrSpotlightNotFound
	}
	return active, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Spotlight, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

// Create opens a spotlight. The active check reads live on purpose: a
// cached read here could open two overlapping spotlights.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Spotlight, error) {
	login := memberdomain.NormalizeLogin(input.TwitchLogin)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	active, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrSpotlightActive
	}

	sp := Spotlight{
		ID:          uuid.NewString(),
		TwitchLogin: login,
		Title:       title,
		StartedAt:   time.Now().UTC(),
		CreatedBy:   memberdomain.NormalizeLogin(input.CreatedBy),
	}
	if err := s.repo.Create(ctx, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Service) Close(ctx context.Context, id string) (*Spotlight, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrSpotlightNotFound
	}
	if existing.EndedAt != nil {
		return nil, ErrSpotlightClosed
	}
	return s.repo.Close(ctx, id)
}

func (s *Service) Presences(ctx context.Context, spotlightID string) ([]Presence, error) {
	if err := s.mustExist(ctx, spotlightID); err != nil {
		return nil, err
	}
	return s.repo.ListPresences(ctx, spotlightID)
}

func (s *Service) SetPresence(ctx context.Context, spotlightID, login string, present bool) (*Presence, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}
	if err := s.mustExist(ctx, spotlightID); err != nil {
		return nil, err
	}

	p := Presence{
		SpotlightID: spotlightID,
		TwitchLogin: login,
		Present:     present,
		CheckedAt:   time.Now().UTC(),
	}
	if err := s.repo.UpsertPresence(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Evaluations(ctx context.Context, spotlightID string) ([]Evaluation, error) {
	if err := s.mustExist(ctx, spotlightID); err != nil {
		return nil, err
	}
	return s.repo.ListEvaluations(ctx, spotlightID)
}

func (s *Service) Evaluate(ctx context.Context, spotlightID, evaluator string, score int, comment string) (*Evaluation, error) {
	evaluator = memberdomain.NormalizeLogin(evaluator)
	if evaluator == "" {
		return nil, memberdomain.ErrInvalidLogin
	}
	if score < MinScore || score > MaxScore {
		return nil, ErrInvalidScore
	}
	if err := s.mustExist(ctx, spotlightID); err != nil {
		return nil, err
	}

	e := Evaluation{
		SpotlightID: spotlightID,
		Evaluator:   evaluator,
		Score:       score,
		Comment:     strings.TrimSpace(comment),
	}
	if err := s.repo.UpsertEvaluation(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) mustExist(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrSpotlightNotFound
	}
	return nil
}
