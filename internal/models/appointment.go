package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`

	ProfessionalID uint `gorm:"not null;index:idx_appointments_professional_starts" json:"professional_id"`
	Professional   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional"`

	StartsAt time.Time `gorm:"type:timestamptz;not null;index:idx_appointments_professional_starts" json:"starts_at"`
	EndsAt   time.Time `gorm:"type:timestamptz;not null" json:"ends_at"`

	Status string `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
