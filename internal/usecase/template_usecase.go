package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/delivery/http/middleware"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound  = errors.New("schedule template not found")
	ErrTemplateNotOwned  = errors.New("template does not belong to this doctor")
	ErrTemplateNoEffect  = errors.New("template produces no working days for the given range")
	ErrTemplateApplyFail = errors.New("template application failed, schedule left intact")
)

type TemplateUsecase interface {
	CreateTemplate(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetTemplates(ctx context.Context, doctorID uuid.UUID) (*dto.TemplateListResponse, error)
	DeleteTemplate(ctx context.Context, doctorID, templateID uuid.UUID) error
	ApplyTemplate(ctx context.Context, doctorID uuid.UUID, req *dto.ApplyTemplateRequest) (*dto.ApplyTemplateResponse, error)
}

type templateUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	doctorRepo     repository.DoctorProfileRepository
	templateRepo   repository.ScheduleTemplateRepository
	workingDayRepo repository.WorkingDayRepository
	engine         *service.TemplateEngine
	conflictScan   ConflictScanner
	auditService   service.AuditService
	cache          service.AvailabilityCache
}

// ConflictScanner re-scans a doctor's range after schedule mutations.
// Satisfied by ConflictUsecase; declared here to avoid a usecase cycle.
type ConflictScanner interface {
	ScanRange(ctx context.Context, doctorID uuid.UUID, dateRange entity.DateRange) (int, error)
}

func NewTemplateUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	templateRepo repository.ScheduleTemplateRepository,
	workingDayRepo repository.WorkingDayRepository,
	engine *service.TemplateEngine,
	conflictScan ConflictScanner,
	auditService service.AuditService,
	cache service.AvailabilityCache,
) TemplateUsecase {
	return &templateUsecase{
		db:             db,
		log:            log,
		doctorRepo:     doctorRepo,
		templateRepo:   templateRepo,
		workingDayRepo: workingDayRepo,
		engine:         engine,
		conflictScan:   conflictScan,
		auditService:   auditService,
		cache:          cache,
	}
}

func (u *templateUsecase) CreateTemplate(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("CreateTemplate: failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	template, err := converter.CreateTemplateRequestToEntity(doctorID, req)
	if err != nil {
		return nil, err
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if template.IsDefault {
			// At most one default template per doctor.
			if err := u.templateRepo.ClearDefault(tx, doctorID); err != nil {
				return err
			}
		}
		if err := u.templateRepo.Create(tx, template); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionTemplateCreate,
			"schedule_template", template.ID.String(), "", entity.JSON{"name": template.Name})
	})
	if txErr != nil {
		u.log.Warnf("CreateTemplate: failed for doctor %s: %+v", doctorID, txErr)
		return nil, txErr
	}

	return converter.TemplateToResponse(template), nil
}

func (u *templateUsecase) GetTemplates(ctx context.Context, doctorID uuid.UUID) (*dto.TemplateListResponse, error) {
	templates, err := u.templateRepo.FindByDoctorID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("GetTemplates: failed for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return &dto.TemplateListResponse{
		Templates: converter.TemplatesToResponses(templates),
		Total:     len(templates),
	}, nil
}

func (u *templateUsecase) DeleteTemplate(ctx context.Context, doctorID, templateID uuid.UUID) error {
	template, err := u.templateRepo.FindByID(u.db, templateID)
	if err != nil {
		u.log.Warnf("DeleteTemplate: failed to find template %s: %+v", templateID, err)
		return err
	}
	if template == nil {
		return ErrTemplateNotFound
	}
	if template.DoctorID != doctorID {
		return ErrTemplateNotOwned
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	return u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := u.templateRepo.Delete(tx, templateID); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionTemplateDelete,
			"schedule_template", templateID.String(), "", nil)
	})
}

// ApplyTemplate materializes the template into concrete working days over
// [start_date, end_date].
//
// Flow:
// 1. Load and authorize the template
// 2. Plan the upsert set (pure); idempotent per (doctor, weekday)
// 3. Persist plan + audit entry in one transaction
// 4. Invalidate cached availability and re-scan the range for conflicts
func (u *templateUsecase) ApplyTemplate(ctx context.Context, doctorID uuid.UUID, req *dto.ApplyTemplateRequest) (*dto.ApplyTemplateResponse, error) {
	template, err := u.templateRepo.FindByID(u.db, req.TemplateID)
	if err != nil {
		u.log.Warnf("ApplyTemplate: failed to find template %s: %+v", req.TemplateID, err)
		return nil, err
	}
	if template == nil {
		return nil, ErrTemplateNotFound
	}
	if template.DoctorID != doctorID {
		return nil, ErrTemplateNotOwned
	}

	start, err := time.Parse(DateFormat, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	var end *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse(DateFormat, req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if start.After(parsed) {
			return nil, ErrInvalidDateRange
		}
		end = &parsed
	}

	existing, err := u.workingDayRepo.FindByDoctorID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("ApplyTemplate: failed to load working days for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	plan := u.engine.PlanApplication(template, existing, start, end)
	if len(plan) == 0 {
		return nil, ErrTemplateNoEffect
	}

	existingIDs := map[uuid.UUID]bool{}
	for i := range existing {
		existingIDs[existing[i].ID] = true
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	created, updated := 0, 0
	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		for i := range plan {
			day := &plan[i]
			if existingIDs[day.ID] {
				if err := u.workingDayRepo.Update(tx, day); err != nil {
					return err
				}
				updated++
			} else {
				if err := u.workingDayRepo.Create(tx, day); err != nil {
					return err
				}
				created++
			}
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionTemplateApply,
			"schedule_template", template.ID.String(), "template applied to schedule",
			entity.JSON{"doctor_id": doctorID.String(), "created": created, "updated": updated})
	})
	if txErr != nil {
		u.log.Errorf("ApplyTemplate: transaction failed for doctor %s: %+v", doctorID, txErr)
		return nil, fmt.Errorf("%w: %v", ErrTemplateApplyFail, txErr)
	}

	if err := u.cache.InvalidateDoctor(ctx, doctorID); err != nil {
		u.log.Warnf("ApplyTemplate: cache invalidation failed for doctor %s (non-fatal): %+v", doctorID, err)
	}

	// Re-scan the affected range so new conflicts surface immediately.
	scanEnd := start.AddDate(0, 0, MaxResolveRangeDays-1)
	if end != nil && end.Before(scanEnd) {
		scanEnd = *end
	}
	conflictCount, scanErr := u.conflictScan.ScanRange(ctx, doctorID, entity.DateRange{Start: start, End: scanEnd})
	if scanErr != nil {
		u.log.Warnf("ApplyTemplate: conflict re-scan failed for doctor %s (non-fatal): %+v", doctorID, scanErr)
	}

	u.log.Infof("ApplyTemplate: doctor=%s template=%s created=%d updated=%d conflicts=%d",
		doctorID, template.ID, created, updated, conflictCount)
	return &dto.ApplyTemplateResponse{
		TemplateID:   template.ID,
		WorkingDays:  converter.WorkingDaysToResponses(plan),
		CreatedCount: created,
		UpdatedCount: updated,
		NewConflicts: conflictCount,
	}, nil
}
