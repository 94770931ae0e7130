package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/delivery/http/middleware"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrIntegrationNotFound = errors.New("calendar integration not found")
	ErrIntegrationNotOwned = errors.New("calendar integration does not belong to this doctor")
	ErrSyncDisabled        = errors.New("calendar sync is disabled for this integration")
	ErrExternalSync        = errors.New("external calendar provider unavailable")
)

// SyncWindowDays is how far ahead an inbound sync pulls busy blocks.
const SyncWindowDays = 60

type CalendarSyncUsecase interface {
	Sync(ctx context.Context, doctorID, integrationID uuid.UUID) (*dto.CalendarSyncResponse, error)
	GetIntegrations(ctx context.Context, doctorID uuid.UUID) (*dto.IntegrationListResponse, error)
}

type calendarSyncUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	syncTimeout     time.Duration
	doctorRepo      repository.DoctorProfileRepository
	integrationRepo repository.CalendarIntegrationRepository
	exceptionRepo   repository.ScheduleExceptionRepository
	appointmentRepo repository.AppointmentRepository
	provider        service.CalendarProvider
	conflictScan    ConflictScanner
	auditService    service.AuditService
	cache           service.AvailabilityCache
}

func NewCalendarSyncUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	syncTimeout time.Duration,
	doctorRepo repository.DoctorProfileRepository,
	integrationRepo repository.CalendarIntegrationRepository,
	exceptionRepo repository.ScheduleExceptionRepository,
	appointmentRepo repository.AppointmentRepository,
	provider service.CalendarProvider,
	conflictScan ConflictScanner,
	auditService service.AuditService,
	cache service.AvailabilityCache,
) CalendarSyncUsecase {
	return &calendarSyncUsecase{
		db:              db,
		log:             log,
		syncTimeout:     syncTimeout,
		doctorRepo:      doctorRepo,
		integrationRepo: integrationRepo,
		exceptionRepo:   exceptionRepo,
		appointmentRepo: appointmentRepo,
		provider:        provider,
		conflictScan:    conflictScan,
		auditService:    auditService,
		cache:           cache,
	}
}

func (u *calendarSyncUsecase) GetIntegrations(ctx context.Context, doctorID uuid.UUID) (*dto.IntegrationListResponse, error) {
	integrations, err := u.integrationRepo.FindByDoctorID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("GetIntegrations: failed for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	responses := make([]dto.IntegrationResponse, len(integrations))
	for i := range integrations {
		responses[i] = dto.IntegrationResponse{
			ID:            integrations[i].ID,
			Provider:      integrations[i].Provider,
			CalendarID:    integrations[i].CalendarID,
			SyncEnabled:   integrations[i].SyncEnabled,
			SyncDirection: string(integrations[i].SyncDirection),
			LastSyncAt:    integrations[i].LastSyncAt,
		}
	}
	return &dto.IntegrationListResponse{
		Integrations: responses,
		Total:        len(integrations),
	}, nil
}

// Sync pulls busy blocks from the external calendar and mirrors them as
// integration-owned exceptions, then pushes local appointments back when the
// direction allows it.
//
// The provider call runs under its own timeout. A provider failure never
// mutates local state: the doctor's availability is flagged stale and the
// engine keeps serving the last known schedule.
func (u *calendarSyncUsecase) Sync(ctx context.Context, doctorID, integrationID uuid.UUID) (*dto.CalendarSyncResponse, error) {
	integration, err := u.integrationRepo.FindByID(u.db, integrationID)
	if err != nil {
		u.log.Warnf("Sync: failed to find integration %s: %+v", integrationID, err)
		return nil, err
	}
	if integration == nil {
		return nil, ErrIntegrationNotFound
	}
	if integration.DoctorID != doctorID {
		return nil, ErrIntegrationNotOwned
	}
	if !integration.SyncEnabled {
		return nil, ErrSyncDisabled
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, SyncWindowDays)

	synced, pushed := 0, 0
	var syncToken string

	if integration.SyncDirection.AllowsInbound() {
		providerCtx, cancel := context.WithTimeout(ctx, u.syncTimeout)
		blocks, token, fetchErr := u.provider.FetchBusyBlocks(providerCtx, integration, from, to)
		cancel()
		if fetchErr != nil {
			// Degrade instead of failing hard: keep serving the last known
			// schedule and flag it stale until the next successful sync.
			u.log.Errorf("Sync: provider fetch failed for integration %s: %+v", integrationID, fetchErr)
			if markErr := u.cache.MarkSyncStale(ctx, doctorID); markErr != nil {
				u.log.Warnf("Sync: failed to mark availability stale for doctor %s: %+v", doctorID, markErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrExternalSync, fetchErr)
		}
		syncToken = token

		for i := range blocks {
			if err := u.upsertBusyBlock(integration, &blocks[i]); err != nil {
				u.log.Warnf("Sync: failed to mirror event %s: %+v", blocks[i].ExternalID, err)
				return nil, err
			}
			synced++
		}
	}

	if integration.SyncDirection.AllowsOutbound() {
		appointments, err := u.appointmentRepo.FindByDoctorAndRange(u.db, doctorID, entity.DateRange{Start: from, End: to})
		if err != nil {
			u.log.Warnf("Sync: failed to load appointments for doctor %s: %+v", doctorID, err)
			return nil, err
		}
		providerCtx, cancel := context.WithTimeout(ctx, u.syncTimeout)
		pushed, err = u.provider.PushAppointments(providerCtx, integration, appointments)
		cancel()
		if err != nil {
			// Outbound push is advisory; log and continue with the inbound result.
			u.log.Warnf("Sync: outbound push failed for integration %s (non-fatal): %+v", integrationID, err)
		}
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	txErr := u.db.Transaction(func(tx *gorm.DB) error {
		if err := u.integrationRepo.UpdateLastSync(tx, integrationID, syncToken); err != nil {
			return err
		}
		return u.auditService.LogAction(ctx, tx, userIDPtr(userID), entity.AuditActionCalendarSync,
			"calendar_integration", integrationID.String(), "",
			entity.JSON{"doctor_id": doctorID.String(), "synced_events": synced, "pushed_appointments": pushed})
	})
	if txErr != nil {
		u.log.Errorf("Sync: failed to record sync for integration %s: %+v", integrationID, txErr)
		return nil, txErr
	}

	if err := u.cache.InvalidateDoctor(ctx, doctorID); err != nil {
		u.log.Warnf("Sync: cache invalidation failed for doctor %s (non-fatal): %+v", doctorID, err)
	}

	newConflicts, scanErr := u.conflictScan.ScanRange(ctx, doctorID, entity.DateRange{Start: from, End: to})
	if scanErr != nil {
		u.log.Warnf("Sync: conflict re-scan failed for doctor %s (non-fatal): %+v", doctorID, scanErr)
	}

	u.log.Infof("Sync: integration=%s doctor=%s synced=%d pushed=%d conflicts=%d",
		integrationID, doctorID, synced, pushed, newConflicts)
	return &dto.CalendarSyncResponse{
		IntegrationID: integrationID,
		SyncedEvents:  synced,
		PushedEvents:  pushed,
		NewConflicts:  newConflicts,
		SyncedAt:      time.Now().UTC(),
	}, nil
}

// upsertBusyBlock mirrors one external event as an integration-owned
// exception. Identity is (integration, external event id), so re-syncing the
// same event updates the existing row instead of stacking duplicates.
func (u *calendarSyncUsecase) upsertBusyBlock(integration *entity.CalendarIntegration, block *service.BusyBlock) error {
	existing, err := u.exceptionRepo.FindByExternalEvent(u.db, integration.ID, block.ExternalID)
	if err != nil {
		return err
	}

	startDate := block.Start.UTC().Truncate(24 * time.Hour)
	endDate := block.End.UTC().Truncate(24 * time.Hour)
	if endDate.Before(startDate) {
		endDate = startDate
	}

	var startTime, endTime *timestr.TimeOfDay
	if !block.AllDay {
		s := timestr.FromMinutes(block.Start.UTC().Hour()*60 + block.Start.UTC().Minute())
		e := timestr.FromMinutes(block.End.UTC().Hour()*60 + block.End.UTC().Minute())
		startTime, endTime = &s, &e
	}

	if existing != nil {
		existing.StartDate = startDate
		existing.EndDate = endDate
		existing.IsAllDay = block.AllDay
		existing.StartTime = startTime
		existing.EndTime = endTime
		existing.Reason = block.Summary
		return u.exceptionRepo.Update(u.db, existing)
	}

	externalID := block.ExternalID
	exception := &entity.ScheduleException{
		ID:                  uuid.New(),
		DoctorID:            integration.DoctorID,
		ExceptionType:       entity.ExceptionCustom,
		Status:              entity.ExceptionStatusApproved,
		StartDate:           startDate,
		EndDate:             endDate,
		IsAllDay:            block.AllDay,
		StartTime:           startTime,
		EndTime:             endTime,
		AffectsAppointments: true,
		Reason:              block.Summary,
		IntegrationID:       &integration.ID,
		ExternalEventID:     &externalID,
	}
	return u.exceptionRepo.Create(u.db, exception)
}
