package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleConflictRepository interface {
	Create(db *gorm.DB, conflict *entity.ScheduleConflict) error
	CreateBatch(db *gorm.DB, conflicts []entity.ScheduleConflict) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleConflict, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.ConflictFilter) ([]entity.ScheduleConflict, error)
	FindPendingKeys(db *gorm.DB, doctorID uuid.UUID, dateRange entity.DateRange) (map[string]bool, error)
	Update(db *gorm.DB, conflict *entity.ScheduleConflict) error
}
