package evaluation

import "time"

// Evaluation is a monthly score per member. One row per (login, month);
// month keys are always the first day of the month, formatted
// YYYY-MM-01, so two evaluations within the same month collapse onto
// the same row.
type Evaluation struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	TwitchLogin string    `gorm:"size:64;not null;uniqueIndex:idx_eval_login_month"`
	Month       string    `gorm:"size:10;not null;uniqueIndex:idx_eval_login_month"`
	Score       int       `gorm:"not null"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// MonthKey reduces any instant to its month row key.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01") + "-01"
}
