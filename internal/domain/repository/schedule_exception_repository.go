package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleExceptionRepository interface {
	Create(db *gorm.DB, exception *entity.ScheduleException) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleException, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.ExceptionFilter) ([]entity.ScheduleException, error)
	FindOverlapping(db *gorm.DB, doctorID uuid.UUID, dateRange entity.DateRange) ([]entity.ScheduleException, error)
	FindByExternalEvent(db *gorm.DB, integrationID uuid.UUID, externalEventID string) (*entity.ScheduleException, error)
	Update(db *gorm.DB, exception *entity.ScheduleException) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
