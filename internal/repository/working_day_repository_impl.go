package repository

import (
	"errors"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workingDayRepository struct{}

func NewWorkingDayRepository() domainRepo.WorkingDayRepository {
	return &workingDayRepository{}
}

func (r *workingDayRepository) Create(db *gorm.DB, day *entity.WorkingDay) error {
	return db.Create(day).Error
}

func (r *workingDayRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.WorkingDay, error) {
	var day entity.WorkingDay
	err := db.Where("id = ?", id).First(&day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

func (r *workingDayRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WorkingDay, error) {
	var days []entity.WorkingDay
	err := db.Where("doctor_id = ? AND is_template = ?", doctorID, false).
		Order("day_of_week ASC, created_at ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (r *workingDayRepository) FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday entity.Weekday) ([]entity.WorkingDay, error) {
	var days []entity.WorkingDay
	err := db.Where("doctor_id = ? AND day_of_week = ? AND is_template = ?", doctorID, weekday, false).
		Order("created_at ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (r *workingDayRepository) Update(db *gorm.DB, day *entity.WorkingDay) error {
	return db.Save(day).Error
}

func (r *workingDayRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	affected := db.Where("doctor_id = ? AND is_template = ?", doctorID, false).Delete(&entity.WorkingDay{})
	return affected.RowsAffected, affected.Error
}
