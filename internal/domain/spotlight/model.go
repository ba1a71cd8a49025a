package spotlight

import "time"

// Spotlight puts one member in front of the community for a stretch of
// time. At most one spotlight is open at any moment; staleness here
// would let two overlap, so nothing in this package is ever cached.
type Spotlight struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	TwitchLogin string     `gorm:"size:64;not null;index"`
	Title       string     `gorm:"not null"`
	StartedAt   time.Time  `gorm:"not null"`
	EndedAt     *time.Time `gorm:"index"`
	CreatedBy   string     `gorm:"size:64;not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

type Presence struct {
	SpotlightID string    `gorm:"type:uuid;primaryKey"`
	TwitchLogin string    `gorm:"size:64;primaryKey"`
	Present     bool      `gorm:"not null"`
	CheckedAt   time.Time `gorm:"not null"`

	Spotlight Spotlight `gorm:"foreignKey:SpotlightID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps spotlight check-ins apart from the event presence table.
func (Presence) TableName() string { return "spotlight_presences" }

type Evaluation struct {
	SpotlightID string    `gorm:"type:uuid;primaryKey"`
	Evaluator   string    `gorm:"size:64;primaryKey"`
	Score       int       `gorm:"not null"`
	Comment     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Spotlight Spotlight `gorm:"foreignKey:SpotlightID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName keeps spotlight scores apart from the monthly evaluation table.
func (Evaluation) TableName() string { return "spotlight_evaluations" }

type CreateInput struct {
	TwitchLogin string
	Title       string
	CreatedBy   string
}
