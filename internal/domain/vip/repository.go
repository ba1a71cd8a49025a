package vip

import "context"

type Repository interface {
	ListByLogin(ctx context.Context, login string, limit, offset int) ([]HistoryEntry, error)
	ListByMonth(ctx context.Context, month string, limit, offset int) ([]HistoryEntry, error)
	Create(ctx context.Context, entry *HistoryEntry) error
}
