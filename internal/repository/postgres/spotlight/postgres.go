package spotlight

import (
	"context"
	"errors"
	"time"

	spotlightdomain "tenf-admin-go/internal/domain/spotlight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindActive(ctx context.Context) (*spotlightdomain.Spotlight, error) {
	var s spotlightdomain.Spotlight
	err := r.db.WithContext(ctx).
		Where("ended_at IS NULL").
		Order("started_at desc").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*spotlightdomain.Spotlight, error) {
	var s spotlightdomain.Spotlight
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]spotlightdomain.Spotlight, error) {
	var spotlights []spotlightdomain.Spotlight
	err := r.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Offset(offset).
		Find(&spotlights).Error
	if err != nil {
		return nil, err
	}
	return spotlights, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *spotlightdomain.Spotlight) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresRepository) Close(ctx context.Context, id string) (*spotlightdomain.Spotlight, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&spotlightdomain.Spotlight{}).
		Where("id = ? AND ended_at IS NULL", id).
		Update("ended_at", now)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, spotlightdomain.ErrSpotlightNotFound
	}

	closed, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if closed == nil {
		return nil, spotlightdomain.ErrSpotlightNotFound
	}
	return closed, nil
}

func (r *PostgresRepository) ListPresences(ctx context.Context, spotlightID string) ([]spotlightdomain.Presence, error) {
	var presences []spotlightdomain.Presence
	err := r.db.WithContext(ctx).
		Where("spotlight_id = ?", spotlightID).
		Order("twitch_login asc").
		Find(&presences).Error
	if err != nil {
		return nil, err
	}
	return presences, nil
}

func (r *PostgresRepository) UpsertPresence(ctx context.Context, p *spotlightdomain.Presence) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "spotlight_id"}, {Name: "twitch_login"}},
			DoUpdates: clause.AssignmentColumns([]string{"present", "checked_at"}),
		}).
		Create(p).Error
}

func (r *PostgresRepository) ListEvaluations(ctx context.Context, spotlightID string) ([]spotlightdomain.Evaluation, error) {
	var evaluations []spotlightdomain.Evaluation
	err := r.db.WithContext(ctx).
		Where("spotlight_id = ?", spotlightID).
		Order("evaluator asc").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *PostgresRepository) UpsertEvaluation(ctx context.Context, e *spotlightdomain.Evaluation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "spotlight_id"}, {Name: "evaluator"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "comment"}),
		}).
		Create(e).Error
}
