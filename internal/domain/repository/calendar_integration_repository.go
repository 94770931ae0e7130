package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarIntegrationRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.CalendarIntegration, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.CalendarIntegration, error)
	UpdateLastSync(db *gorm.DB, id uuid.UUID, syncToken string) error
}
