package entity

import (
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// Appointment is the engine's read model of a booked appointment. Booking
// itself is owned by a collaborator service; the engine only reads these rows
// to block slots and detect double bookings.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	StartTime       timestr.TimeOfDay `gorm:"type:time;not null" json:"start_time"`
	Duration        int               `gorm:"not null" json:"duration"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// BlocksSlots reports whether the appointment occupies schedule capacity.
// Completed, cancelled and no-show appointments free their slot.
func (a *Appointment) BlocksSlots() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusScheduled
}

// EndTime returns the appointment's end wall-clock time.
func (a *Appointment) EndTime() timestr.TimeOfDay {
	return a.StartTime.AddMinutes(a.Duration)
}
