package twitch

import (
	"context"
	"errors"

	twitchdomain "tenf-admin-go/internal/domain/twitch"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByMessageID(ctx context.Context, messageID string) (*twitchdomain.WebhookEvent, error) {
	var event twitchdomain.WebhookEvent
	err := r.db.WithContext(ctx).Where("message_id = ?", messageID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) Create(ctx context.Context, event *twitchdomain.WebhookEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit, offset int) ([]twitchdomain.WebhookEvent, error) {
	var events []twitchdomain.WebhookEvent
	err := r.db.WithContext(ctx).
		Order("received_at desc").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
