package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile is the engine's read model of a doctor. Account management
// lives in the surrounding system; scheduling only needs identity, an active
// flag and the doctor's home timezone default.
type DoctorProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName        string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Specialization  string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	DefaultTimezone string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"default_timezone"`
	IsActive        *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	WorkingDays []WorkingDay `gorm:"foreignKey:DoctorID" json:"working_days,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
