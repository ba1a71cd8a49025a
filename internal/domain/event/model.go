package event

import "time"

type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	StartsAt    time.Time `gorm:"not null;index"`
	Published   bool      `gorm:"not null;default:false;index"`
	CreatedBy   string    `gorm:"size:64;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type Registration struct {
	EventID      string    `gorm:"type:uuid;primaryKey"`
	TwitchLogin  string    `gorm:"size:64;primaryKey"`
	RegisteredAt time.Time `gorm:"autoCreateTime"`

	Event Event `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`
}

type Presence struct {
	EventID     string    `gorm:"type:uuid;primaryKey"`
	TwitchLogin string    `gorm:"size:64;primaryKey"`
	Present     bool      `gorm:"not null"`
	CheckedAt   time.Time `gorm:"not null"`

	Event Event `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`
}

type CreateInput struct {
	Title       string
	Description string
	StartsAt    time.Time
	CreatedBy   string
}

// UpdateInput is a patch: nil fields are left untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	StartsAt    *time.Time
	Published   *bool
}
