package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrScheduleReplaceFailed = errors.New("schedule replacement failed, previous schedule left intact")
	ErrNoWorkingDays         = errors.New("schedule must configure at least one working day")
)

type ScheduleUsecase interface {
	GetSchedule(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleResponse, error)
	ReplaceSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceScheduleRequest) (*dto.ScheduleResponse, error)
}

type scheduleUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	doctorRepo     repository.DoctorProfileRepository
	workingDayRepo repository.WorkingDayRepository
	auditService   service.AuditService
	cache          service.AvailabilityCache
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	workingDayRepo repository.WorkingDayRepository,
	auditService service.AuditService,
	cache service.AvailabilityCache,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:             db,
		log:            log,
		doctorRepo:     doctorRepo,
		workingDayRepo: workingDayRepo,
		auditService:   auditService,
		cache:          cache,
	}
}

// GetSchedule returns the doctor's current working-day configuration.
func (u *scheduleUsecase) GetSchedule(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("GetSchedule: failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	days, err := u.workingDayRepo.FindByDoctorID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("GetSchedule: failed to load working days for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.WorkingDaysToScheduleResponse(doctorID, days), nil
}

// ReplaceSchedule swaps the doctor's entire working-day set wholesale.
//
// The delete and the inserts run inside one transaction: a failure anywhere
// rolls everything back and the prior schedule stays intact. Callers can rely
// on "nothing changed" whenever an error comes back.
func (u *scheduleUsecase) ReplaceSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceScheduleRequest) (*dto.ScheduleResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("ReplaceSchedule: failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	days, err := converter.ReplaceScheduleRequestToWorkingDays(doctorID, req)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrNoWorkingDays
	}
	for i := range days {
		if err := days[i].Validate(); err != nil {
			return nil, err
		}
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := u.workingDayRepo.DeleteByDoctorID(tx, doctorID); err != nil {
			return err
		}
		for i := range days {
			if err := u.workingDayRepo.Create(tx, &days[i]); err != nil {
				return err
			}
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionScheduleReplace,
			"working_day", doctorID.String(), "wholesale schedule replacement",
			entity.JSON{"doctor_id": doctorID.String(), "day_count": len(days)})
	})
	if txErr != nil {
		u.log.Errorf("ReplaceSchedule: transaction failed for doctor %s: %+v", doctorID, txErr)
		return nil, fmt.Errorf("%w: %v", ErrScheduleReplaceFailed, txErr)
	}

	if err := u.cache.InvalidateDoctor(ctx, doctorID); err != nil {
		u.log.Warnf("ReplaceSchedule: cache invalidation failed for doctor %s (non-fatal): %+v", doctorID, err)
	}

	u.log.Infof("ReplaceSchedule: doctor=%s days=%d", doctorID, len(days))
	return converter.WorkingDaysToScheduleResponse(doctorID, days), nil
}

func userIDPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
