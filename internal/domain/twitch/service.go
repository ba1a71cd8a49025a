package twitch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, secret string) *Service {
	return &Service{repo: repo, secret: secret}
}

// Ingest verifies and stores one EventSub delivery. Redeliveries (same
// MessageID) return the stored row without writing again.
func (s *Service) Ingest(ctx context.Context, messageID, timestamp, eventType string, body []byte, signature string) (*WebhookEvent, error) {
	if s.secret == "" {
		return nil, ErrNoSecret
	}
	if !VerifySignature(s.secret, messageID, timestamp, body, signature) {
		return nil, ErrBadSignature
	}

	existing, err := s.repo.FindByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	event := WebhookEvent{
		ID:         uuid.NewString(),
		MessageID:  messageID,
		Type:       eventType,
		Payload:    string(body),
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Service) Recent(ctx context.Context, limit, offset int) ([]WebhookEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListRecent(ctx, limit, offset)
}
