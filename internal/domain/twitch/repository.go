package twitch

import "context"

type Repository interface {
	FindByMessageID(ctx context.Context, messageID string) (*WebhookEvent, error)
	Create(ctx context.Context, event *WebhookEvent) error
	ListRecent(ctx context.Context, limit, offset int) ([]WebhookEvent, error)
}
