package member

import (
	"context"
	"errors"

	memberdomain "tenf-admin-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindAll(ctx context.Context, limit, offset int) ([]memberdomain.Member, error) {
	return list(r.db.WithContext(ctx), limit, offset)
}

func (r *PostgresRepository) FindActive(ctx context.Context, limit, offset int) ([]memberdomain.Member, error) {
	return list(r.db.WithContext(ctx).Where("is_active = ?", true), limit, offset)
}

func (r *PostgresRepository) FindVips(ctx context.Context, limit, offset int) ([]memberdomain.Member, error) {
	return list(r.db.WithContext(ctx).Where("is_vip = ? AND is_active = ?", true, true), limit, offset)
}

func list(query *gorm.DB, limit, offset int) ([]memberdomain.Member, error) {
	var members []memberdomain.Member
	err := query.
		Order("twitch_login asc").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) FindByTwitchLogin(ctx context.Context, login string) (*memberdomain.Member, error) {
	var m memberdomain.Member
	err := r.db.WithContext(ctx).Where("twitch_login = ?", login).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, m *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) Update(ctx context.Context, login string, patch memberdomain.UpdateInput) (*memberdomain.Member, error) {
	updates := map[string]interface{}{}
	if patch.DisplayName != nil {
		updates["display_name"] = *patch.DisplayName
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.IsVip != nil {
		updates["is_vip"] = *patch.IsVip
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).
			Model(&memberdomain.Member{}).
			Where("twitch_login = ?", login).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, memberdomain.ErrMemberNotFound
		}
	}

	return r.reload(ctx, login)
}

func (r *PostgresRepository) ReplaceBadges(ctx context.Context, login string, badges []string) (*memberdomain.Member, error) {
	result := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("twitch_login = ?", login).
		Update("badges", badges)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, memberdomain.ErrMemberNotFound
	}
	return r.reload(ctx, login)
}

func (r *PostgresRepository) reload(ctx context.Context, login string) (*memberdomain.Member, error) {
	updated, err := r.FindByTwitchLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, memberdomain.ErrMemberNotFound
	}
	return updated, nil
}
