package models

import "time"

const (
	ScheduleDaily       = "daily"
	ScheduleWeekdays    = "weekdays"
	ScheduleOneTime     = "one_time"
	ScheduleCustomDates = "custom_dates"
)

// Medicine is one scheduled medication for one patient. DoseTime is a local
// time of day in HH:MM, ScheduleDays holds weekdays 0..6 (Sunday = 0) and
// ScheduleDates/TakenDates hold calendar dates in YYYY-MM-DD form.
type Medicine struct {
	ID            uint   `gorm:"primaryKey"`
	PatientID     uint   `gorm:"not null;index"`
	CaregiverID   uint   `gorm:"not null;index"`
	Name          string `gorm:"not null"`
	DoseTime      string `gorm:"not null"`
	Stock         int    `gorm:"not null;default:0"`
	Instructions  string
	VoiceNoteRef  string    `gorm:"not null;default:''"`
	ScheduleKind  string    `gorm:"not null;default:daily"`
	ScheduleDays  []int     `gorm:"serializer:json"`
	ScheduleDates []string  `gorm:"serializer:json"`
	TakenDates    []string  `gorm:"serializer:json"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
}
