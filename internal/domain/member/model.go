package member

import (
	"strings"
	"time"
)

const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type Member struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	TwitchLogin string    `gorm:"size:64;not null;uniqueIndex"`
	DisplayName string    `gorm:"not null"`
	Role        string    `gorm:"type:varchar(32);not null;default:member"`
	Badges      []string  `gorm:"serializer:json"`
	IsVip       bool      `gorm:"not null;default:false"`
	IsActive    bool      `gorm:"not null;default:true"`
	JoinedAt    time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// UpdateInput is a patch: nil fields are left untouched.
type UpdateInput struct {
	DisplayName *string
	Role        *string
	IsVip       *bool
	IsActive    *bool
}

type CreateInput struct {
	TwitchLogin string
	DisplayName string
	Role        string
	JoinedAt    time.Time
}

// MatchReport is the outcome of bulk login matching for the VIP/raid
// admin flows: which raw inputs resolved to a member and which did not.
type MatchReport struct {
	Matched   []Match  `json:"matched"`
	Unmatched []string `json:"unmatched"`
}

type Match struct {
	Input  string `json:"input"`
	Member Member `json:"member"`
	Exact  bool   `json:"exact"`
}

// NormalizeLogin is applied to every login before it is used as a filter,
// a cache key component or a column value.
func NormalizeLogin(login string) string {
	login = strings.TrimSpace(login)
	login = strings.TrimPrefix(login, "@")
	return strings.ToLower(login)
}
