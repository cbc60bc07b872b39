package models

import "time"

const (
	RoleCaregiver = "caregiver"
	RolePatient   = "patient"
)

const (
	PlanFree = "free"
	PlanPaid = "paid"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:patient"`
	Plan         string    `gorm:"not null;default:free"`
	CaregiverID  *uint     `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null"`
}
