package usecase

import (
	"context"
	"errors"
	"time"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/delivery/http/middleware"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrConflictNotFound = errors.New("schedule conflict not found")

type ConflictUsecase interface {
	ScanConflicts(ctx context.Context, doctorID uuid.UUID, req *dto.ScanConflictsRequest) (*dto.ScanConflictsResponse, error)
	ListConflicts(ctx context.Context, doctorID uuid.UUID, req *dto.ListConflictsRequest) (*dto.ConflictListResponse, error)
	AutoFixConflict(ctx context.Context, conflictID uuid.UUID) (*dto.ConflictResponse, error)
	ResolveConflict(ctx context.Context, conflictID uuid.UUID, req *dto.ResolveConflictRequest) (*dto.ConflictResponse, error)
	IgnoreConflict(ctx context.Context, conflictID uuid.UUID, req *dto.IgnoreConflictRequest) (*dto.ConflictResponse, error)

	// ScanRange is the internal entry point used after schedule mutations.
	ScanRange(ctx context.Context, doctorID uuid.UUID, dateRange entity.DateRange) (int, error)
}

type conflictUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorProfileRepository
	workingDayRepo  repository.WorkingDayRepository
	exceptionRepo   repository.ScheduleExceptionRepository
	appointmentRepo repository.AppointmentRepository
	conflictRepo    repository.ScheduleConflictRepository
	engine          *service.AvailabilityEngine
	detector        *service.ConflictDetector
	auditService    service.AuditService
	cache           service.AvailabilityCache
}

func NewConflictUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	workingDayRepo repository.WorkingDayRepository,
	exceptionRepo repository.ScheduleExceptionRepository,
	appointmentRepo repository.AppointmentRepository,
	conflictRepo repository.ScheduleConflictRepository,
	engine *service.AvailabilityEngine,
	detector *service.ConflictDetector,
	auditService service.AuditService,
	cache service.AvailabilityCache,
) ConflictUsecase {
	return &conflictUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		workingDayRepo:  workingDayRepo,
		exceptionRepo:   exceptionRepo,
		appointmentRepo: appointmentRepo,
		conflictRepo:    conflictRepo,
		engine:          engine,
		detector:        detector,
		auditService:    auditService,
		cache:           cache,
	}
}

// ScanConflicts runs a detection pass over the requested range and returns the
// doctor's pending conflicts afterwards.
func (u *conflictUsecase) ScanConflicts(ctx context.Context, doctorID uuid.UUID, req *dto.ScanConflictsRequest) (*dto.ScanConflictsResponse, error) {
	dateRange, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if dateRange.Days() > MaxResolveRangeDays {
		return nil, ErrDateRangeTooLarge
	}

	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("ScanConflicts: failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	newCount, err := u.ScanRange(ctx, doctorID, dateRange)
	if err != nil {
		return nil, err
	}

	pending, err := u.conflictRepo.FindByDoctorID(u.db, doctorID, &entity.ConflictFilter{
		Status:  entity.ConflictStatusPending,
		StartAt: req.StartDate,
		EndAt:   req.EndDate,
	})
	if err != nil {
		u.log.Warnf("ScanConflicts: failed to list conflicts for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ScanConflictsResponse{
		DoctorID:     doctorID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		NewConflicts: newCount,
		Conflicts:    converter.ConflictsToResponses(pending),
	}, nil
}

// ScanRange detects conflicts in the range and persists the previously unseen
// ones. Identity is the conflict key: a condition already tracked as a PENDING
// record is skipped, and terminal records are never reopened, so repeated
// scans of an unchanged schedule insert nothing.
func (u *conflictUsecase) ScanRange(ctx context.Context, doctorID uuid.UUID, dateRange entity.DateRange) (int, error) {
	snapshot, err := u.loadSnapshot(ctx, doctorID, dateRange)
	if err != nil {
		return 0, err
	}

	detected := u.detector.Detect(snapshot)
	if len(detected) == 0 {
		return 0, nil
	}

	pendingKeys, err := u.conflictRepo.FindPendingKeys(u.db, doctorID, dateRange)
	if err != nil {
		u.log.Warnf("ScanRange: failed to load pending conflict keys for doctor %s: %+v", doctorID, err)
		return 0, err
	}

	fresh := make([]entity.ScheduleConflict, 0, len(detected))
	for i := range detected {
		if pendingKeys[detected[i].ConflictKey] {
			continue
		}
		fresh = append(fresh, detected[i])
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if err := u.conflictRepo.CreateBatch(tx, fresh); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionConflictScan,
			"schedule_conflict", doctorID.String(), "",
			entity.JSON{"doctor_id": doctorID.String(), "detected": len(detected), "created": len(fresh)})
	})
	if txErr != nil {
		u.log.Errorf("ScanRange: failed to persist conflicts for doctor %s: %+v", doctorID, txErr)
		return 0, txErr
	}

	u.log.Infof("ScanRange: doctor=%s range=%s..%s detected=%d created=%d",
		doctorID, dateRange.Start.Format(DateFormat), dateRange.End.Format(DateFormat), len(detected), len(fresh))
	return len(fresh), nil
}

func (u *conflictUsecase) ListConflicts(ctx context.Context, doctorID uuid.UUID, req *dto.ListConflictsRequest) (*dto.ConflictListResponse, error) {
	filter := &entity.ConflictFilter{
		Status:       entity.ConflictStatus(req.Status),
		ConflictType: entity.ConflictType(req.ConflictType),
		Severity:     entity.ConflictSeverity(req.Severity),
	}
	if req.StartDate != "" && req.EndDate != "" {
		if _, err := parseDateRange(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
		filter.StartAt = req.StartDate
		filter.EndAt = req.EndDate
	}

	conflicts, err := u.conflictRepo.FindByDoctorID(u.db, doctorID, filter)
	if err != nil {
		u.log.Warnf("ListConflicts: failed for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.ConflictListResponse{
		Conflicts: converter.ConflictsToResponses(conflicts),
		Total:     len(conflicts),
	}, nil
}

// AutoFixConflict resolves an auto-fixable conflict by applying its planned
// side effects and the status transition in one transaction. Suppressed slots
// become custom timed exceptions so the fix survives slot regeneration.
func (u *conflictUsecase) AutoFixConflict(ctx context.Context, conflictID uuid.UUID) (*dto.ConflictResponse, error) {
	conflict, err := u.conflictRepo.FindByID(u.db, conflictID)
	if err != nil {
		u.log.Warnf("AutoFixConflict: failed to find conflict %s: %+v", conflictID, err)
		return nil, err
	}
	if conflict == nil {
		return nil, ErrConflictNotFound
	}

	// Rebuild the schedule state around the conflict date so the planner can
	// map affected slot ids back to concrete windows.
	day := entity.DateRange{Start: conflict.ConflictDate, End: conflict.ConflictDate}
	snapshot, err := u.loadSnapshot(ctx, conflict.DoctorID, day)
	if err != nil {
		return nil, err
	}

	commands, err := u.detector.PlanAutoFix(conflict, snapshot)
	if err != nil {
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	now := time.Now().UTC()

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		for i := range commands {
			if err := u.applyFixCommand(tx, conflict.DoctorID, &commands[i]); err != nil {
				return err
			}
		}
		if err := conflict.Resolve(entity.ResolutionAutoReschedule, "auto-fix applied", now); err != nil {
			return err
		}
		if err := u.conflictRepo.Update(tx, conflict); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionConflictAutoFix,
			"schedule_conflict", conflict.ID.String(), "",
			entity.JSON{"conflict_type": string(conflict.ConflictType), "commands": len(commands)})
	})
	if txErr != nil {
		u.log.Errorf("AutoFixConflict: transaction failed for conflict %s: %+v", conflictID, txErr)
		return nil, txErr
	}

	if err := u.cache.InvalidateDoctor(ctx, conflict.DoctorID); err != nil {
		u.log.Warnf("AutoFixConflict: cache invalidation failed for doctor %s (non-fatal): %+v", conflict.DoctorID, err)
	}

	u.log.Infof("AutoFixConflict: conflict=%s type=%s commands=%d", conflict.ID, conflict.ConflictType, len(commands))
	return converter.ConflictToResponse(conflict), nil
}

// ResolveConflict marks a conflict resolved with an explicitly chosen method.
// CANCEL_APPOINTMENT additionally cancels the conflict's primary appointment.
func (u *conflictUsecase) ResolveConflict(ctx context.Context, conflictID uuid.UUID, req *dto.ResolveConflictRequest) (*dto.ConflictResponse, error) {
	method := entity.ResolutionMethod(req.ResolutionMethod)
	if !method.Valid() {
		return nil, entity.ErrResolutionMethodRequired
	}

	conflict, err := u.conflictRepo.FindByID(u.db, conflictID)
	if err != nil {
		u.log.Warnf("ResolveConflict: failed to find conflict %s: %+v", conflictID, err)
		return nil, err
	}
	if conflict == nil {
		return nil, ErrConflictNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	now := time.Now().UTC()

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if method == entity.ResolutionCancel && conflict.AppointmentID != nil {
			if err := u.appointmentRepo.UpdateStatus(tx, *conflict.AppointmentID, entity.AppointmentStatusCancelled); err != nil {
				return err
			}
		}
		if err := conflict.Resolve(method, req.Notes, now); err != nil {
			return err
		}
		if err := u.conflictRepo.Update(tx, conflict); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionConflictResolve,
			"schedule_conflict", conflict.ID.String(), req.Notes,
			entity.JSON{"resolution_method": string(method)})
	})
	if txErr != nil {
		u.log.Warnf("ResolveConflict: failed for conflict %s: %+v", conflictID, txErr)
		return nil, txErr
	}

	if err := u.cache.InvalidateDoctor(ctx, conflict.DoctorID); err != nil {
		u.log.Warnf("ResolveConflict: cache invalidation failed for doctor %s (non-fatal): %+v", conflict.DoctorID, err)
	}

	return converter.ConflictToResponse(conflict), nil
}

// IgnoreConflict dismisses a conflict without changing the schedule.
func (u *conflictUsecase) IgnoreConflict(ctx context.Context, conflictID uuid.UUID, req *dto.IgnoreConflictRequest) (*dto.ConflictResponse, error) {
	conflict, err := u.conflictRepo.FindByID(u.db, conflictID)
	if err != nil {
		u.log.Warnf("IgnoreConflict: failed to find conflict %s: %+v", conflictID, err)
		return nil, err
	}
	if conflict == nil {
		return nil, ErrConflictNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	now := time.Now().UTC()

	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if err := conflict.Ignore(req.Notes, now); err != nil {
			return err
		}
		if err := u.conflictRepo.Update(tx, conflict); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionConflictIgnore,
			"schedule_conflict", conflict.ID.String(), req.Notes, nil)
	})
	if txErr != nil {
		u.log.Warnf("IgnoreConflict: failed for conflict %s: %+v", conflictID, txErr)
		return nil, txErr
	}

	return converter.ConflictToResponse(conflict), nil
}

// applyFixCommand executes one planned side effect on the transaction.
func (u *conflictUsecase) applyFixCommand(tx *gorm.DB, doctorID uuid.UUID, cmd *service.FixCommand) error {
	switch cmd.Kind {
	case service.FixSuppressSlot:
		start := cmd.Start
		end := cmd.End
		exception := &entity.ScheduleException{
			ID:                  uuid.New(),
			DoctorID:            doctorID,
			ExceptionType:       entity.ExceptionCustom,
			Status:              entity.ExceptionStatusApproved,
			StartDate:           cmd.Date,
			EndDate:             cmd.Date,
			IsAllDay:            false,
			StartTime:           &start,
			EndTime:             &end,
			AffectsAppointments: false,
			Reason:              "slot suppressed by conflict auto-fix",
		}
		return u.exceptionRepo.Create(tx, exception)

	case service.FixCancelAppointment:
		if cmd.AppointmentID == nil {
			return nil
		}
		return u.appointmentRepo.UpdateStatus(tx, *cmd.AppointmentID, entity.AppointmentStatusCancelled)
	}
	return nil
}

// loadSnapshot fetches schedule state and evaluates each day into slots,
// producing the pure input the detector and the auto-fix planner work on.
func (u *conflictUsecase) loadSnapshot(ctx context.Context, doctorID uuid.UUID, dateRange entity.DateRange) (*service.ScheduleSnapshot, error) {
	var (
		workingDays  []entity.WorkingDay
		exceptions   []entity.ScheduleException
		appointments []entity.Appointment
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		workingDays, fetchErr = u.workingDayRepo.FindByDoctorID(u.db, doctorID)
		return fetchErr
	})
	g.Go(func() error {
		var fetchErr error
		exceptions, fetchErr = u.exceptionRepo.FindOverlapping(u.db, doctorID, dateRange)
		return fetchErr
	})
	g.Go(func() error {
		var fetchErr error
		appointments, fetchErr = u.appointmentRepo.FindByDoctorAndRange(u.db, doctorID, dateRange)
		return fetchErr
	})
	if err := g.Wait(); err != nil {
		u.log.Errorf("loadSnapshot: fetch failed for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	// Leave-blocked slots must stay in the snapshot: leave detection and the
	// auto-fix planner resolve affected slot ids against day.Slots, so an
	// evaluation that omits them would hide every leave collision.
	opts := service.AvailabilityOptions{IncludeLeave: true}
	numDays := dateRange.Days()
	days := make([]service.DaySchedule, numDays)
	for i := 0; i < numDays; i++ {
		date := dateRange.Start.AddDate(0, 0, i)
		day := service.ResolveWorkingDay(workingDays, date)
		days[i] = u.engine.EvaluateDay(day, date, exceptions, appointments, opts)
	}

	return buildSnapshot(doctorID, days, exceptions, appointments), nil
}
