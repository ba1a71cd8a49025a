package vip

import "time"

const (
	ActionGranted = "granted"
	ActionRevoked = "revoked"
)

// HistoryEntry records one VIP decision. Month is the YYYY-MM-01 key of
// the month the decision applies to. Small dataset, read rarely: never
// cached, correctness over speed.
type HistoryEntry struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	TwitchLogin string    `gorm:"size:64;not null;index"`
	Month       string    `gorm:"size:10;not null;index"`
	Action      string    `gorm:"type:varchar(16);not null"`
	Reason      string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
