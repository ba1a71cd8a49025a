package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	memberdomain "tenf-admin-go/internal/domain/member"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Event, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.FindAll(ctx, limit, offset)
}

func (s *Service) ListPublished(ctx context.Context, limit, offset int) ([]Event, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.FindPublished(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrEventNotFound
	}
	return found, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.StartsAt.IsZero() {
		return nil, fmt.Errorf("starts_at is required")
	}

	e := Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		StartsAt:    input.StartsAt.UTC(),
		CreatedBy:   memberdomain.NormalizeLogin(input.CreatedBy),
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) Update(ctx context.Context, id string, patch UpdateInput) (*Event, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("title is required")
		}
		patch.Title = &trimmed
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*Event, error) {
	return s.repo.Update(ctx, id, UpdateInput{Published: &published})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Register(ctx context.Context, eventID, login string) (*Registration, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}

	e, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !e.Published {
		return nil, ErrNotPublished
	}

	existing, err := s.repo.ListRegistrations(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, reg := range existing {
		if reg.TwitchLogin == login {
			return nil, ErrAlreadyRegistered
		}
	}

	reg := Registration{EventID: eventID, TwitchLogin: login}
	if err := s.repo.AddRegistration(ctx, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *Service) Unregister(ctx context.Context, eventID, login string) error {
	return s.repo.RemoveRegistration(ctx, eventID, memberdomain.NormalizeLogin(login))
}

// Registrations reads live: moderation happens off this list.
func (s *Service) Registrations(ctx context.Context, eventID string) ([]Registration, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListRegistrations(ctx, eventID)
}

func (s *Service) Presences(ctx context.Context, eventID string) ([]Presence, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListPresences(ctx, eventID)
}

func (s *Service) SetPresence(ctx context.Context, eventID, login string, present bool) (*Presence, error) {
	login = memberdomain.NormalizeLogin(login)
	if login == "" {
		return nil, memberdomain.ErrInvalidLogin
	}

	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	p := Presence{
		EventID:     eventID,
		TwitchLogin: login,
		Present:     present,
		CheckedAt:   time.Now().UTC(),
	}
	if err := s.repo.UpsertPresence(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
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
