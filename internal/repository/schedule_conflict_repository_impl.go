package repository

import (
	"errors"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleConflictRepository struct{}

func NewScheduleConflictRepository() domainRepo.ScheduleConflictRepository {
	return &scheduleConflictRepository{}
}

func (r *scheduleConflictRepository) Create(db *gorm.DB, conflict *entity.ScheduleConflict) error {
	return db.Create(conflict).Error
}

func (r *scheduleConflictRepository) CreateBatch(db *gorm.DB, conflicts []entity.ScheduleConflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	return db.Create(&conflicts).Error
}

func (r *scheduleConflictRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleConflict, error) {
	var conflict entity.ScheduleConflict
	err := db.Where("id = ?", id).First(&conflict).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}

func (r *scheduleConflictRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.ConflictFilter) ([]entity.ScheduleConflict, error) {
	var conflicts []entity.ScheduleConflict
	query := db.Where("doctor_id = ?", doctorID)

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.ConflictType != "" {
			query = query.Where("conflict_type = ?", filter.ConflictType)
		}
		if filter.Severity != "" {
			query = query.Where("severity = ?", filter.Severity)
		}
		if filter.StartAt != "" {
			query = query.Where("conflict_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("conflict_date <= ?", filter.EndAt)
		}
	}

	err := query.Order("conflict_date ASC, created_at ASC").Find(&conflicts).Error
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

// FindPendingKeys returns the conflict keys of all PENDING conflicts in the
// range, so a re-scan can skip conditions that already have an open record
// without ever reopening terminal ones.
func (r *scheduleConflictRepository) FindPendingKeys(db *gorm.DB, doctorID uuid.UUID, dateRange entity.DateRange) (map[string]bool, error) {
	var keys []string
	err := db.Model(&entity.ScheduleConflict{}).
		Where("doctor_id = ? AND status = ? AND conflict_date BETWEEN ? AND ?",
			doctorID, entity.ConflictStatusPending, dateRange.Start, dateRange.End).
		Pluck("conflict_key", &keys).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result, nil
}

func (r *scheduleConflictRepository) Update(db *gorm.DB, conflict *entity.ScheduleConflict) error {
	return db.Save(conflict).Error
}
