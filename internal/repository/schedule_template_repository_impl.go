package repository

import (
	"errors"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateTemplateName is returned when a doctor already has a template
// with the same name (unique index on doctor_id + name).
var ErrDuplicateTemplateName = errors.New("template name already exists for this doctor")

type scheduleTemplateRepository struct{}

func NewScheduleTemplateRepository() domainRepo.ScheduleTemplateRepository {
	return &scheduleTemplateRepository{}
}

func (r *scheduleTemplateRepository) Create(db *gorm.DB, template *entity.ScheduleTemplate) error {
	if err := db.Create(template).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTemplateName
		}
		return err
	}
	return nil
}

func (r *scheduleTemplateRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleTemplate, error) {
	var template entity.ScheduleTemplate
	err := db.Where("id = ?", id).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *scheduleTemplateRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.ScheduleTemplate, error) {
	var templates []entity.ScheduleTemplate
	err := db.Where("doctor_id = ?", doctorID).Order("created_at ASC").Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// ClearDefault unsets is_default on all of the doctor's templates so at most
// one default exists after the caller marks a new one.
func (r *scheduleTemplateRepository) ClearDefault(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Model(&entity.ScheduleTemplate{}).
		Where("doctor_id = ? AND is_default = ?", doctorID, true).
		Update("is_default", false).Error
}

func (r *scheduleTemplateRepository) Update(db *gorm.DB, template *entity.ScheduleTemplate) error {
	return db.Save(template).Error
}

func (r *scheduleTemplateRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.ScheduleTemplate{})
	return affected.RowsAffected, affected.Error
}
