package repository

import (
	"errors"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleExceptionRepository struct{}

func NewScheduleExceptionRepository() domainRepo.ScheduleExceptionRepository {
	return &scheduleExceptionRepository{}
}

func (r *scheduleExceptionRepository) Create(db *gorm.DB, exception *entity.ScheduleException) error {
	return db.Create(exception).Error
}

func (r *scheduleExceptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleException, error) {
	var exception entity.ScheduleException
	err := db.Where("id = ?", id).First(&exception).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exception, nil
}

func (r *scheduleExceptionRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.ExceptionFilter) ([]entity.ScheduleException, error) {
	var exceptions []entity.ScheduleException
	query := db.Where("doctor_id = ?", doctorID)

	if filter != nil {
		if filter.ExceptionType != "" {
			query = query.Where("exception_type = ?", filter.ExceptionType)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.StartAt != "" {
			query = query.Where("end_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("start_date <= ?", filter.EndAt)
		}
	}

	err := query.Order("start_date ASC, created_at ASC").Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}

// FindOverlapping returns exceptions whose date range intersects the given
// range. Interval intersection on dates is inclusive at both ends.
func (r *scheduleExceptionRepository) FindOverlapping(db *gorm.DB, doctorID uuid.UUID, dateRange entity.DateRange) ([]entity.ScheduleException, error) {
	var exceptions []entity.ScheduleException
	err := db.Where("doctor_id = ? AND start_date <= ? AND end_date >= ?", doctorID, dateRange.End, dateRange.Start).
		Order("start_date ASC, created_at ASC").
		Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}

func (r *scheduleExceptionRepository) FindByExternalEvent(db *gorm.DB, integrationID uuid.UUID, externalEventID string) (*entity.ScheduleException, error) {
	var exception entity.ScheduleException
	err := db.Where("integration_id = ? AND external_event_id = ?", integrationID, externalEventID).First(&exception).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exception, nil
}

func (r *scheduleExceptionRepository) Update(db *gorm.DB, exception *entity.ScheduleException) error {
	return db.Save(exception).Error
}

func (r *scheduleExceptionRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.ScheduleException{})
	return affected.RowsAffected, affected.Error
}
