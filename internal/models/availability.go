package models

import "time"

type Availability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `gorm:"not null;index:idx_availability_professional_from" json:"professional_id"`
	Professional   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional"`

	From time.Time `gorm:"column:available_from;type:timestamptz;not null;index:idx_availability_professional_from" json:"from"`
	To   time.Time `gorm:"column:available_to;type:timestamptz;not null" json:"to"`

	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Availability) TableName() string {
	return "availability"
}
