package twitch

import "time"

// EventSub message types as sent in the Twitch-Eventsub-Message-Type header.
const (
	MessageTypeNotification = "notification"
	MessageTypeVerification = "webhook_callback_verification"
	MessageTypeRevocation   = "revocation"
)

// WebhookEvent is one EventSub delivery, stored raw. MessageID is
// unique so redelivered messages collapse onto the existing row.
type WebhookEvent struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	MessageID  string    `gorm:"size:128;not null;uniqueIndex"`
	Type       string    `gorm:"size:128;not null;index"`
	Payload    string    `gorm:"type:jsonb;not null"`
	ReceivedAt time.Time `gorm:"not null"`
}
