package event

import (
	"context"
	"errors"

	eventdomain "tenf-admin-go/internal/domain/event"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAll(ctx context.Context, limit, offset int) ([]eventdomain.Event, error) {
	return list(r.db.WithContext(ctx), limit, offset)
}

func (r *PostgresRepository) FindPublished(ctx context.Context, limit, offset int) ([]eventdomain.Event, error) {
	return list(r.db.WithContext(ctx).Where("published = ?", true), limit, offset)
}

func list(query *gorm.DB, limit, offset int) ([]eventdomain.Event, error) {
	var events []eventdomain.Event
	err := query.
		Order("starts_at desc").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*eventdomain.Event, error) {
	var e eventdomain.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *eventdomain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch eventdomain.UpdateInput) (*eventdomain.Event, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.StartsAt != nil {
		updates["starts_at"] = patch.StartsAt.UTC()
	}
	if patch.Published != nil {
		updates["published"] = *patch.Published
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&eventdomain.Event{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, eventdomain.ErrEventNotFound
		}
	}

	updated, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, eventdomain.ErrEventNotFound
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&eventdomain.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventdomain.ErrEventNotFound
	}
	return nil
}

func (r *PostgresRepository) ListRegistrations(ctx context.Context, eventID string) ([]eventdomain.Registration, error) {
	var regs []eventdomain.Registration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("registered_at asc").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *PostgresRepository) AddRegistration(ctx context.Context, reg *eventdomain.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *PostgresRepository) RemoveRegistration(ctx context.Context, eventID, login string) error {
	result := r.db.WithContext(ctx).
		Delete(&eventdomain.Registration{}, "event_id = ? AND twitch_login = ?", eventID, login)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventdomain.ErrRegistrationNotFound
	}
	return nil
}

func (r *PostgresRepository) ListPresences(ctx context.Context, eventID string) ([]eventdomain.Presence, error) {
	var presences []eventdomain.Presence
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("twitch_login asc").
		Find(&presences).Error
	if err != nil {
		return nil, err
	}
	return presences, nil
}

func (r *PostgresRepository) UpsertPresence(ctx context.Context, p *eventdomain.Presence) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "twitch_login"}},
			DoUpdates: clause.AssignmentColumns([]string{"present", "checked_at"}),
		}).
		Create(p).Error
}
