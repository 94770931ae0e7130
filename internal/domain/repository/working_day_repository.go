package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkingDayRepository interface {
	Create(db *gorm.DB, day *entity.WorkingDay) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.WorkingDay, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WorkingDay, error)
	FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WorkingDay, error)
	Update(db *gorm.DB, day *entity.WorkingDay) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
