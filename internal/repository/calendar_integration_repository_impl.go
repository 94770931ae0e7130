package repository

import (
	"errors"
	"time"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type calendarIntegrationRepository struct{}

func NewCalendarIntegrationRepository() domainRepo.CalendarIntegrationRepository {
	return &calendarIntegrationRepository{}
}

func (r *calendarIntegrationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.CalendarIntegration, error) {
	var integration entity.CalendarIntegration
	err := db.Where("id = ?", id).First(&integration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &integration, nil
}

func (r *calendarIntegrationRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.CalendarIntegration, error) {
	var integrations []entity.CalendarIntegration
	err := db.Where("doctor_id = ?", doctorID).Order("created_at ASC").Find(&integrations).Error
	if err != nil {
		return nil, err
	}
	return integrations, nil
}

func (r *calendarIntegrationRepository) UpdateLastSync(db *gorm.DB, id uuid.UUID, syncToken string) error {
	return db.Model(&entity.CalendarIntegration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_sync_at": time.Now().UTC(),
			"sync_token":   syncToken,
		}).Error
}
