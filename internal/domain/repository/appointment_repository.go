package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository is read-only: booking is owned by a collaborator
// service, the engine only inspects appointments and, during conflict
// resolution, updates their status.
type AppointmentRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, dateRange entity.DateRange) ([]entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error
}
