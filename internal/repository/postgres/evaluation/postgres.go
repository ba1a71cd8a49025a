package evaluation

import (
	"context"
	"errors"

	evaluationdomain "tenf-admin-go/internal/domain/evaluation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByLogin(ctx context.Context, login string, limit, offset int) ([]evaluationdomain.Evaluation, error) {
	var evaluations []evaluationdomain.Evaluation
	err := r.db.WithContext(ctx).
		Where("twitch_login = ?", login).
		Order("month desc").
		Limit(limit).
		Offset(offset).
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *PostgresRepository) FindByLoginAndMonth(ctx context.Context, login, month string) (*evaluationdomain.Evaluation, error) {
	var e evaluationdomain.Evaluation
	err := r.db.WithContext(ctx).
		Where("twitch_login = ? AND month = ?", login, month).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, e *evaluationdomain.Evaluation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "twitch_login"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "notes", "updated_at"}),
		}).
		Create(e).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, login, month string) error {
	result := r.db.WithContext(ctx).
		Delete(&evaluationdomain.Evaluation{}, "twitch_login = ? AND month = ?", login, month)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return evaluationdomain.ErrEvaluationNotFound
	}
	return nil
}

func (r *PostgresRepository) AverageScore(ctx context.Context, login string) (float64, int64, error) {
	type row struct {
		Average float64
		Count   int64
	}
	var result row
	err := r.db.WithContext(ctx).
		Model(&evaluationdomain.Evaluation{}).
		Select("COALESCE(AVG(score), 0) as average, COUNT(1) as count").
		Where("twitch_login = ?", login).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Count, nil
}
