package usecase

import (
	"context"
	"errors"
	"time"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrDateRangeTooLarge   = errors.New("date range exceeds the maximum resolvable window")
	ErrInvalidSlotDuration = errors.New("slot duration must be between 15 and 480 minutes")
)

// MaxResolveRangeDays bounds one availability resolution window.
const MaxResolveRangeDays = 90

const DateFormat = "2006-01-02"

type AvailabilityUsecase interface {
	ResolveAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ResolveAvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorProfileRepository
	workingDayRepo  repository.WorkingDayRepository
	exceptionRepo   repository.ScheduleExceptionRepository
	appointmentRepo repository.AppointmentRepository
	engine          *service.AvailabilityEngine
	detector        *service.ConflictDetector
	cache           service.AvailabilityCache
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	workingDayRepo repository.WorkingDayRepository,
	exceptionRepo repository.ScheduleExceptionRepository,
	appointmentRepo repository.AppointmentRepository,
	engine *service.AvailabilityEngine,
	detector *service.ConflictDetector,
	cache service.AvailabilityCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		workingDayRepo:  workingDayRepo,
		exceptionRepo:   exceptionRepo,
		appointmentRepo: appointmentRepo,
		engine:          engine,
		detector:        detector,
		cache:           cache,
	}
}

// ResolveAvailability turns the doctor's working-day configuration,
// exceptions and booked appointments into the final slot list for a range.
//
// Flow:
// 1. Validate the range and duration bounds
// 2. Verify the doctor exists
// 3. Serve from cache when the call is cacheable
// 4. Fetch working days, exceptions and appointments concurrently
// 5. Evaluate each day in parallel (pure, no I/O per day)
// 6. Assemble the range roll-up, run a conflict scan, cache and return
func (u *availabilityUsecase) ResolveAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.ResolveAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	// Step 1: Validate the requested range
	dateRange, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		u.log.Warnf("ResolveAvailability: invalid range for doctor %s: %v", doctorID, err)
		return nil, err
	}
	if dateRange.Days() > MaxResolveRangeDays {
		return nil, ErrDateRangeTooLarge
	}
	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < entity.MinAppointmentDuration || req.DurationMinutes > entity.MaxAppointmentDuration) {
		return nil, ErrInvalidSlotDuration
	}

	// Step 2: Verify the doctor exists and is active
	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("ResolveAvailability: failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil || doctor.IsActive == nil || !*doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	// Step 3: Cache lookup. Rescheduling calls carry an excluded appointment
	// and bypass the cache so the vacated slot is evaluated fresh.
	cacheable := req.ExcludeAppointmentID == nil && !req.IncludeBreaks
	cacheKey := service.AvailabilityCacheKey(doctorID, dateRange.Start, dateRange.End, req.DurationMinutes)
	if cacheable {
		var cached dto.AvailabilityResponse
		if hit, cacheErr := u.cache.Get(ctx, cacheKey, &cached); cacheErr == nil && hit {
			cached.SyncStale = u.cache.IsSyncStale(ctx, doctorID)
			return &cached, nil
		}
	}

	// Step 4: Fetch the three snapshots concurrently; latency is bounded by
	// the slowest single query instead of accumulating per slot.
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
		u.log.Errorf("ResolveAvailability: snapshot fetch failed for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	opts := service.AvailabilityOptions{
		DurationMinutes:      req.DurationMinutes,
		IncludeBreaks:        req.IncludeBreaks,
		IncludeLeave:         req.IncludeLeave,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	}

	// The detector always sees leave-blocked slots: the caller's display
	// options may omit them from the response, but detection over a schedule
	// without them would never surface a leave collision.
	detectOpts := opts
	detectOpts.IncludeLeave = true

	// Step 5: Evaluate days in parallel; each day's computation is
	// independent, results land in their slot by index so ordering is kept.
	numDays := dateRange.Days()
	days := make([]service.DaySchedule, numDays)
	detectDays := make([]service.DaySchedule, numDays)
	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < numDays; i++ {
		i := i
		date := dateRange.Start.AddDate(0, 0, i)
		eg.Go(func() error {
			day := service.ResolveWorkingDay(workingDays, date)
			days[i] = u.engine.EvaluateDay(day, date, exceptions, appointments, opts)
			if opts.IncludeLeave {
				detectDays[i] = days[i]
			} else {
				detectDays[i] = u.engine.EvaluateDay(day, date, exceptions, appointments, detectOpts)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Step 6: Roll up the range and scan it for conflicts
	snapshot := buildSnapshot(doctorID, detectDays, exceptions, appointments)
	conflicts := u.detector.Detect(snapshot)

	resp := converter.AvailabilityToResponse(doctorID, dateRange, days, conflicts)
	resp.SyncStale = u.cache.IsSyncStale(ctx, doctorID)

	if cacheable {
		if cacheErr := u.cache.Set(ctx, cacheKey, resp); cacheErr != nil {
			u.log.Warnf("ResolveAvailability: failed to cache result for doctor %s (non-fatal): %+v", doctorID, cacheErr)
		}
	}

	u.log.Infof("ResolveAvailability: doctor=%s range=%s..%s slots=%d available=%d conflicts=%d",
		doctorID, req.StartDate, req.EndDate, countSlots(days), resp.TotalAvailableSlots, len(conflicts))
	return resp, nil
}

func buildSnapshot(doctorID uuid.UUID, days []service.DaySchedule, exceptions []entity.ScheduleException, appointments []entity.Appointment) *service.ScheduleSnapshot {
	snapshot := &service.ScheduleSnapshot{
		DoctorID:     doctorID,
		Days:         make([]service.DaySnapshot, len(days)),
		Exceptions:   exceptions,
		Appointments: appointments,
	}
	for i := range days {
		snapshot.Days[i] = service.DaySnapshot{
			Date:       days[i].Date,
			WorkingDay: days[i].WorkingDay,
			Slots:      days[i].Slots,
		}
	}
	return snapshot
}

func countSlots(days []service.DaySchedule) int {
	total := 0
	for i := range days {
		total += len(days[i].Slots)
	}
	return total
}

func parseDateRange(startDate, endDate string) (entity.DateRange, error) {
	start, err := time.Parse(DateFormat, startDate)
	if err != nil {
		return entity.DateRange{}, ErrInvalidDate
	}
	end, err := time.Parse(DateFormat, endDate)
	if err != nil {
		return entity.DateRange{}, ErrInvalidDate
	}
	if start.After(end) {
		return entity.DateRange{}, ErrInvalidDateRange
	}
	return entity.DateRange{Start: start, End: end}, nil
}
