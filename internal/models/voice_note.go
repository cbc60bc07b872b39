package models

import "time"

// VoiceNote stores recorded instruction audio. Ref is an opaque random
// reference handed back to callers instead of a row id.
type VoiceNote struct {
	Ref       string    `gorm:"primaryKey"`
	MimeType  string    `gorm:"not null;default:audio/webm"`
	Data      []byte    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
