package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleTemplateRepository interface {
	Create(db *gorm.DB, template *entity.ScheduleTemplate) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleTemplate, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.ScheduleTemplate, error)
	ClearDefault(db *gorm.DB, doctorID uuid.UUID) error
	Update(db *gorm.DB, template *entity.ScheduleTemplate) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
