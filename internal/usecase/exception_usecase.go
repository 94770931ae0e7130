package usecase

import (
	"context"
	"errors"

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
	ErrExceptionNotFound = errors.New("schedule exception not found")
	ErrExceptionNotOwned = errors.New("exception does not belong to this doctor")
)

type ExceptionUsecase interface {
	CreateException(ctx context.Context, doctorID uuid.UUID, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error)
	GetExceptions(ctx context.Context, doctorID uuid.UUID, req *dto.ListExceptionsRequest) (*dto.ExceptionListResponse, error)
	DeleteException(ctx context.Context, doctorID, exceptionID uuid.UUID) error
}

type exceptionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	doctorRepo    repository.DoctorProfileRepository
	exceptionRepo repository.ScheduleExceptionRepository
	conflictScan  ConflictScanner
	auditService  service.AuditService
	cache         service.AvailabilityCache
}

func NewExceptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	exceptionRepo repository.ScheduleExceptionRepository,
	conflictScan ConflictScanner,
	auditService service.AuditService,
	cache service.AvailabilityCache,
) ExceptionUsecase {
	return &exceptionUsecase{
		db:            db,
		log:           log,
		doctorRepo:    doctorRepo,
		exceptionRepo: exceptionRepo,
		conflictScan:  conflictScan,
		auditService:  auditService,
		cache:         cache,
	}
}

// CreateException records a schedule exception. When the exception can affect
// existing appointments the covered range is re-scanned so collisions surface
// as conflicts instead of being silently absorbed.
func (u *exceptionUsecase) CreateException(ctx context.Context, doctorID uuid.UUID, req *dto.CreateExceptionRequest) (*dto.ExceptionResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("CreateException: failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	exception, err := converter.CreateExceptionRequestToEntity(doctorID, req)
	if err != nil {
		return nil, err
	}
	if err := exception.Validate(); err != nil {
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if err := u.exceptionRepo.Create(tx, exception); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionExceptionCreate,
			"schedule_exception", exception.ID.String(), exception.Reason,
			entity.JSON{
				"doctor_id":      doctorID.String(),
				"exception_type": string(exception.ExceptionType),
				"start_date":     exception.StartDate.Format(DateFormat),
				"end_date":       exception.EndDate.Format(DateFormat),
			})
	})
	if txErr != nil {
		u.log.Warnf("CreateException: failed for doctor %s: %+v", doctorID, txErr)
		return nil, txErr
	}

	if err := u.cache.InvalidateDoctor(ctx, doctorID); err != nil {
		u.log.Warnf("CreateException: cache invalidation failed for doctor %s (non-fatal): %+v", doctorID, err)
	}

	newConflicts := 0
	if exception.AffectsAppointments && exception.IsApproved() {
		dateRange := entity.DateRange{Start: exception.StartDate, End: exception.EndDate}
		if dateRange.Days() > MaxResolveRangeDays {
			dateRange.End = dateRange.Start.AddDate(0, 0, MaxResolveRangeDays-1)
		}
		count, scanErr := u.conflictScan.ScanRange(ctx, doctorID, dateRange)
		if scanErr != nil {
			u.log.Warnf("CreateException: conflict re-scan failed for doctor %s (non-fatal): %+v", doctorID, scanErr)
		}
		newConflicts = count
	}

	u.log.Infof("CreateException: doctor=%s type=%s range=%s..%s conflicts=%d",
		doctorID, exception.ExceptionType, exception.StartDate.Format(DateFormat), exception.EndDate.Format(DateFormat), newConflicts)

	resp := converter.ExceptionToResponse(exception)
	resp.NewConflicts = newConflicts
	return resp, nil
}

func (u *exceptionUsecase) GetExceptions(ctx context.Context, doctorID uuid.UUID, req *dto.ListExceptionsRequest) (*dto.ExceptionListResponse, error) {
	filter := &entity.ExceptionFilter{
		ExceptionType: entity.ExceptionType(req.ExceptionType),
		Status:        entity.ExceptionStatus(req.Status),
	}
	if req.StartDate != "" && req.EndDate != "" {
		if _, err := parseDateRange(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
		filter.StartAt = req.StartDate
		filter.EndAt = req.EndDate
	}

	exceptions, err := u.exceptionRepo.FindByDoctorID(u.db, doctorID, filter)
	if err != nil {
		u.log.Warnf("GetExceptions: failed for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ExceptionListResponse{
		Exceptions: converter.ExceptionsToResponses(exceptions),
		Total:      len(exceptions),
	}, nil
}

// DeleteException removes an exception and re-opens the windows it blocked.
func (u *exceptionUsecase) DeleteException(ctx context.Context, doctorID, exceptionID uuid.UUID) error {
	exception, err := u.exceptionRepo.FindByID(u.db, exceptionID)
	if err != nil {
		u.log.Warnf("DeleteException: failed to find exception %s: %+v", exceptionID, err)
		return err
	}
	if exception == nil {
		return ErrExceptionNotFound
	}
	if exception.DoctorID != doctorID {
		return ErrExceptionNotOwned
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := u.exceptionRepo.Delete(tx, exceptionID); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionExceptionDelete,
			"schedule_exception", exceptionID.String(), "", nil)
	})
	if txErr != nil {
		u.log.Warnf("DeleteException: failed for exception %s: %+v", exceptionID, txErr)
		return txErr
	}

	if err := u.cache.InvalidateDoctor(ctx, doctorID); err != nil {
		u.log.Warnf("DeleteException: cache invalidation failed for doctor %s (non-fatal): %+v", doctorID, err)
	}
	return nil
}
