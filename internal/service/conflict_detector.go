package service

import (
	"fmt"
	"sort"
	"time"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// DaySnapshot is one day's scheduling state handed to the detector.
type DaySnapshot struct {
	Date       time.Time
	WorkingDay *entity.WorkingDay
	Slots      []entity.TimeSlot
}

// ScheduleSnapshot is everything the detector scans. It is assembled by the
// caller from persisted state; the detector itself never touches storage so
// it stays independently testable.
type ScheduleSnapshot struct {
	DoctorID     uuid.UUID
	Days         []DaySnapshot
	Exceptions   []entity.ScheduleException
	Appointments []entity.Appointment
}

// ConflictDetector scans schedule snapshots for inconsistencies. Detection
// is deterministic regardless of input order: slots are sorted by start time
// then id before any pairwise work, and conflict keys are derived from slot
// and record identifiers, never positional indices.
type ConflictDetector struct{}

func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{}
}

// Detect runs every detection rule over the snapshot and returns all
// findings as PENDING conflicts. A single slot may appear in conflicts of
// several types; findings are independent.
func (d *ConflictDetector) Detect(snapshot *ScheduleSnapshot) []entity.ScheduleConflict {
	conflicts := []entity.ScheduleConflict{}

	for i := range snapshot.Days {
		day := &snapshot.Days[i]
		slots := sortedSlots(day.Slots)
		conflicts = append(conflicts, d.detectOverlaps(snapshot.DoctorID, day.Date, slots)...)
		if day.WorkingDay != nil {
			conflicts = append(conflicts, d.detectBreakViolations(snapshot.DoctorID, day.Date, day.WorkingDay, slots)...)
			conflicts = append(conflicts, d.detectWorkingHoursViolations(snapshot.DoctorID, day.Date, day.WorkingDay, slots)...)
		}
	}

	conflicts = append(conflicts, d.detectLeaveConflicts(snapshot)...)
	conflicts = append(conflicts, d.detectDoubleBookings(snapshot)...)
	conflicts = append(conflicts, d.detectExceptionViolations(snapshot)...)

	return conflicts
}

// detectOverlaps emits one HIGH conflict per unordered pair of intersecting
// slots on the same day.
func (d *ConflictDetector) detectOverlaps(doctorID uuid.UUID, date time.Time, slots []entity.TimeSlot) []entity.ScheduleConflict {
	conflicts := []entity.ScheduleConflict{}
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := &slots[i], &slots[j]
			if !a.Overlaps(b) {
				continue
			}
			start := laterTime(a.StartTime, b.StartTime)
			end := earlierTime(a.EndTime, b.EndTime)
			conflicts = append(conflicts, entity.ScheduleConflict{
				DoctorID:        doctorID,
				ConflictType:    entity.ConflictOverlap,
				ConflictKey:     fmt.Sprintf("overlap:%s:%s", a.ID, b.ID),
				ConflictDate:    date,
				ConflictStart:   &start,
				ConflictEnd:     &end,
				Severity:        entity.SeverityHigh,
				Status:          entity.ConflictStatusPending,
				AutoFixable:     true,
				AffectedSlotIDs: entity.StringList{a.ID, b.ID},
				Description:     fmt.Sprintf("slots %s-%s and %s-%s overlap", a.StartTime, a.EndTime, b.StartTime, b.EndTime),
				SuggestedFix:    "adjust one of the overlapping time slots",
			})
		}
	}
	return conflicts
}

// detectBreakViolations collects all slots starting inside the break window
// into a single MEDIUM conflict for the day.
func (d *ConflictDetector) detectBreakViolations(doctorID uuid.UUID, date time.Time, day *entity.WorkingDay, slots []entity.TimeSlot) []entity.ScheduleConflict {
	if !day.HasBreak() {
		return nil
	}
	affected := entity.StringList{}
	for i := range slots {
		start := slots[i].StartTime
		if !start.Before(*day.BreakStart) && start.Before(*day.BreakEnd) {
			affected = append(affected, slots[i].ID)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return []entity.ScheduleConflict{{
		DoctorID:        doctorID,
		ConflictType:    entity.ConflictBreakViolation,
		ConflictKey:     fmt.Sprintf("break:%s", date.Format("2006-01-02")),
		ConflictDate:    date,
		ConflictStart:   day.BreakStart,
		ConflictEnd:     day.BreakEnd,
		Severity:        entity.SeverityMedium,
		Status:          entity.ConflictStatusPending,
		AutoFixable:     true,
		AffectedSlotIDs: affected,
		Description:     fmt.Sprintf("%d slot(s) start during the %s-%s break", len(affected), day.BreakStart, day.BreakEnd),
		SuggestedFix:    "remove or move the slots inside the break window",
	}}
}

// detectWorkingHoursViolations collects all slots outside the working window
// into a single HIGH conflict for the day. Deciding which slot to cut needs
// human judgment, so these are never auto-fixable.
func (d *ConflictDetector) detectWorkingHoursViolations(doctorID uuid.UUID, date time.Time, day *entity.WorkingDay, slots []entity.TimeSlot) []entity.ScheduleConflict {
	affected := entity.StringList{}
	for i := range slots {
		if slots[i].StartTime.Before(day.StartTime) || slots[i].EndTime.After(day.EndTime) {
			affected = append(affected, slots[i].ID)
		}
	}
	if len(affected) == 0 {
		return nil
	}
	return []entity.ScheduleConflict{{
		DoctorID:        doctorID,
		ConflictType:    entity.ConflictWorkingHours,
		ConflictKey:     fmt.Sprintf("hours:%s", date.Format("2006-01-02")),
		ConflictDate:    date,
		ConflictStart:   &day.StartTime,
		ConflictEnd:     &day.EndTime,
		Severity:        entity.SeverityHigh,
		Status:          entity.ConflictStatusPending,
		AutoFixable:     false,
		AffectedSlotIDs: affected,
		Description:     fmt.Sprintf("%d slot(s) fall outside working hours %s-%s", len(affected), day.StartTime, day.EndTime),
		SuggestedFix:    "review the slots outside working hours and cut or move them",
	}}
}

// detectLeaveConflicts emits one CRITICAL conflict per approved leave whose
// window intersects any generated slot.
func (d *ConflictDetector) detectLeaveConflicts(snapshot *ScheduleSnapshot) []entity.ScheduleConflict {
	conflicts := []entity.ScheduleConflict{}
	for i := range snapshot.Exceptions {
		leave := &snapshot.Exceptions[i]
		// Custom exceptions cover slot suppressions and synced busy blocks,
		// which are not leave; flagging them here would re-flag applied fixes.
		if !leave.IsApproved() || leave.ExceptionType == entity.ExceptionCustom || leave.IntegrationID != nil {
			continue
		}
		affected := entity.StringList{}
		for j := range snapshot.Days {
			day := &snapshot.Days[j]
			for k := range day.Slots {
				slot := &day.Slots[k]
				if leave.BlocksWindow(day.Date, slot.StartTime, slot.EndTime) {
					affected = append(affected, slot.ID)
				}
			}
		}
		if len(affected) == 0 {
			continue
		}
		conflicts = append(conflicts, entity.ScheduleConflict{
			DoctorID:        snapshot.DoctorID,
			ConflictType:    entity.ConflictLeave,
			ConflictKey:     fmt.Sprintf("leave:%s", leave.ID),
			ConflictDate:    leave.StartDate,
			ConflictStart:   leave.StartTime,
			ConflictEnd:     leave.EndTime,
			Severity:        entity.SeverityCritical,
			Status:          entity.ConflictStatusPending,
			AutoFixable:     true,
			AffectedSlotIDs: affected,
			Description: fmt.Sprintf("%d slot(s) collide with %s leave from %s to %s",
				len(affected), leave.ExceptionType, leave.StartDate.Format("2006-01-02"), leave.EndDate.Format("2006-01-02")),
			SuggestedFix: "suppress the slots covered by the leave",
		})
	}
	return conflicts
}

// detectDoubleBookings emits one CRITICAL conflict per unordered pair of
// blocking appointments that share the exact same date and start time.
// This is record-level: real bookings are never silently cancelled.
func (d *ConflictDetector) detectDoubleBookings(snapshot *ScheduleSnapshot) []entity.ScheduleConflict {
	appointments := make([]entity.Appointment, 0, len(snapshot.Appointments))
	for _, a := range snapshot.Appointments {
		if a.BlocksSlots() {
			appointments = append(appointments, a)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		if !appointments[i].AppointmentDate.Equal(appointments[j].AppointmentDate) {
			return appointments[i].AppointmentDate.Before(appointments[j].AppointmentDate)
		}
		if !appointments[i].StartTime.Equal(appointments[j].StartTime) {
			return appointments[i].StartTime.Before(appointments[j].StartTime)
		}
		return appointments[i].ID.String() < appointments[j].ID.String()
	})

	conflicts := []entity.ScheduleConflict{}
	for i := 0; i < len(appointments); i++ {
		for j := i + 1; j < len(appointments); j++ {
			a, b := &appointments[i], &appointments[j]
			if !a.AppointmentDate.Equal(b.AppointmentDate) || !a.StartTime.Equal(b.StartTime) {
				continue
			}
			start := a.StartTime
			end := a.EndTime()
			conflicts = append(conflicts, entity.ScheduleConflict{
				DoctorID:                 snapshot.DoctorID,
				ConflictType:             entity.ConflictDoubleBooking,
				ConflictKey:              fmt.Sprintf("double:%s:%s:%s:%s", a.AppointmentDate.Format("2006-01-02"), a.StartTime, a.ID, b.ID),
				AppointmentID:            &a.ID,
				ConflictingAppointmentID: &b.ID,
				ConflictDate:             a.AppointmentDate,
				ConflictStart:            &start,
				ConflictEnd:              &end,
				Severity:                 entity.SeverityCritical,
				Status:                   entity.ConflictStatusPending,
				AutoFixable:              false,
				Description:              fmt.Sprintf("two appointments booked at %s on %s", a.StartTime, a.AppointmentDate.Format("2006-01-02")),
				SuggestedFix:             "reschedule or cancel one of the appointments manually",
			})
		}
	}
	return conflicts
}

// detectExceptionViolations emits one conflict per blocking appointment that
// falls inside an approved exception with affects_appointments set. When the
// exception came from an external calendar the conflict is typed
// CALENDAR_SYNC so sync-driven collisions are distinguishable.
func (d *ConflictDetector) detectExceptionViolations(snapshot *ScheduleSnapshot) []entity.ScheduleConflict {
	conflicts := []entity.ScheduleConflict{}
	for i := range snapshot.Exceptions {
		exc := &snapshot.Exceptions[i]
		if !exc.IsApproved() || !exc.AffectsAppointments {
			continue
		}
		conflictType := entity.ConflictExceptionViolation
		if exc.IntegrationID != nil {
			conflictType = entity.ConflictCalendarSync
		}
		for j := range snapshot.Appointments {
			appt := &snapshot.Appointments[j]
			if !appt.BlocksSlots() {
				continue
			}
			if !exc.BlocksWindow(appt.AppointmentDate, appt.StartTime, appt.EndTime()) {
				continue
			}
			start := appt.StartTime
			end := appt.EndTime()
			conflicts = append(conflicts, entity.ScheduleConflict{
				DoctorID:      snapshot.DoctorID,
				ConflictType:  conflictType,
				ConflictKey:   fmt.Sprintf("exception:%s:%s", exc.ID, appt.ID),
				AppointmentID: &appt.ID,
				ConflictDate:  appt.AppointmentDate,
				ConflictStart: &start,
				ConflictEnd:   &end,
				Severity:      entity.SeverityHigh,
				Status:        entity.ConflictStatusPending,
				AutoFixable:   false,
				Description: fmt.Sprintf("appointment at %s on %s collides with a %s exception",
					appt.StartTime, appt.AppointmentDate.Format("2006-01-02"), exc.ExceptionType),
				SuggestedFix: "reschedule the appointment outside the blocked window",
			})
		}
	}
	return conflicts
}

// sortedSlots returns a copy ordered by start time then slot id, keeping
// pairwise scans and conflict keys stable across re-runs.
func sortedSlots(slots []entity.TimeSlot) []entity.TimeSlot {
	out := make([]entity.TimeSlot, len(slots))
	copy(out, slots)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func laterTime(a, b timestr.TimeOfDay) timestr.TimeOfDay {
	if a.After(b) {
		return a
	}
	return b
}

func earlierTime(a, b timestr.TimeOfDay) timestr.TimeOfDay {
	if a.Before(b) {
		return a
	}
	return b
}
