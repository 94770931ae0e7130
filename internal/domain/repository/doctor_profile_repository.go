package repository

import (
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorProfile, error)
}
