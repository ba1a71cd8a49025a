package vip

import (
	"context"

	vipdomain "tenf-admin-go/internal/domain/vip"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByLogin(ctx context.Context, login string, limit, offset int) ([]vipdomain.HistoryEntry, error) {
	return list(r.db.WithContext(ctx).Where("twitch_login = ?", login), limit, offset)
}

func (r *PostgresRepository) ListByMonth(ctx context.Context, month string, limit, offset int) ([]vipdomain.HistoryEntry, error) {
	return list(r.db.WithContext(ctx).Where("month = ?", month), limit, offset)
}

func list(query *gorm.DB, limit, offset int) ([]vipdomain.HistoryEntry, error) {
	var entries []vipdomain.HistoryEntry
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *vipdomain.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
