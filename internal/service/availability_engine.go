package service

import (
	"sort"
	"time"

	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// AvailabilityOptions tune one resolve call.
type AvailabilityOptions struct {
	// DurationMinutes overrides the working day's configured appointment
	// duration when positive.
	DurationMinutes int
	// IncludeBreaks keeps break-window slots in the result, marked
	// unavailable, instead of omitting them.
	IncludeBreaks bool
	// IncludeLeave keeps leave-blocked slots in the result, marked
	// unavailable with the leave type, instead of omitting them.
	IncludeLeave bool
	// ExcludeAppointmentID unblocks the slot held by this appointment, used
	// when rescheduling so the vacated slot is not self-blocked.
	ExcludeAppointmentID *uuid.UUID
}

// DaySchedule is the per-day availability summary returned to callers.
type DaySchedule struct {
	Date           time.Time          `json:"date"`
	DayName        string             `json:"day_name"`
	IsWorking      bool               `json:"is_working"`
	WorkingDay     *entity.WorkingDay `json:"-"`
	Slots          []entity.TimeSlot  `json:"slots"`
	AvailableSlots int                `json:"available_slots"`
}

// AvailabilityEngine evaluates slot availability for single days from
// pre-fetched snapshots. It performs no I/O, which keeps the resolve path's
// per-day fan-out trivially safe to parallelize.
type AvailabilityEngine struct {
	generator *SlotGenerator
}

func NewAvailabilityEngine(generator *SlotGenerator) *AvailabilityEngine {
	return &AvailabilityEngine{generator: generator}
}

// ResolveWorkingDay picks the working day that applies on the date. The
// candidate with the narrowest effective range wins; ties go to the most
// recently created row.
func ResolveWorkingDay(days []entity.WorkingDay, date time.Time) *entity.WorkingDay {
	var best *entity.WorkingDay
	for i := range days {
		wd := &days[i]
		if !wd.EffectiveOn(date) {
			continue
		}
		if best == nil {
			best = wd
			continue
		}
		bw, ww := best.EffectiveRangeDays(), wd.EffectiveRangeDays()
		if ww < bw || (ww == bw && wd.CreatedAt.After(best.CreatedAt)) {
			best = wd
		}
	}
	return best
}

// EvaluateDay generates the day's slots and applies the availability checks
// in order: leave, existing booking, then a defensive working-hours and break
// revalidation. The first failing check wins and is recorded as the slot's
// unavailability reason.
func (e *AvailabilityEngine) EvaluateDay(
	day *entity.WorkingDay,
	date time.Time,
	exceptions []entity.ScheduleException,
	appointments []entity.Appointment,
	opts AvailabilityOptions,
) DaySchedule {
	schedule := DaySchedule{
		Date:    date.Truncate(24 * time.Hour),
		DayName: date.Weekday().String(),
		Slots:   []entity.TimeSlot{},
	}
	if day == nil || !day.IsWorking {
		return schedule
	}
	schedule.IsWorking = true
	schedule.WorkingDay = day

	generated := e.generator.Generate(e.effectiveConfig(day, opts), date)

	for i := range generated {
		slot := generated[i]

		if exc := blockingException(exceptions, date, &slot); exc != nil {
			slot.MarkUnavailable(entity.UnavailableReasonLeave)
			slot.LeaveType = exc.ExceptionType
			if !opts.IncludeLeave {
				continue
			}
		}

		if slot.IsAvailable {
			if booked := bookedAppointment(appointments, date, &slot, opts.ExcludeAppointmentID); booked != nil {
				slot.MarkUnavailable(entity.UnavailableReasonBooked)
				slot.CurrentBookings = 1
			}
		}

		// The generator already guarantees these; re-validate defensively so a
		// bad config surfaces as a marked slot instead of a silent anomaly.
		if slot.IsAvailable {
			if slot.StartTime.Before(day.StartTime) || slot.EndTime.After(day.EndTime) {
				slot.MarkUnavailable(entity.UnavailableReasonOutside)
			} else if day.HasBreak() && !slot.StartTime.Before(*day.BreakStart) && slot.StartTime.Before(*day.BreakEnd) {
				slot.MarkUnavailable(entity.UnavailableReasonBreak)
				if !opts.IncludeBreaks {
					continue
				}
			}
		}

		if slot.IsAvailable {
			schedule.AvailableSlots++
		}
		schedule.Slots = append(schedule.Slots, slot)
	}

	return schedule
}

// effectiveConfig applies per-call option overrides to the stored config.
func (e *AvailabilityEngine) effectiveConfig(day *entity.WorkingDay, opts AvailabilityOptions) *entity.WorkingDay {
	needsCopy := (opts.DurationMinutes > 0 && opts.DurationMinutes != day.AppointmentDuration) || opts.IncludeBreaks
	if !needsCopy {
		return day
	}
	copied := *day
	if opts.DurationMinutes > 0 {
		copied.AppointmentDuration = opts.DurationMinutes
	}
	if opts.IncludeBreaks {
		// Generate through the break; the slots inside it get marked
		// unavailable during evaluation instead of being skipped.
		copied.BreakStart = nil
		copied.BreakEnd = nil
	}
	return &copied
}

// blockingException returns the first approved exception suppressing the
// slot's window, or nil.
func blockingException(exceptions []entity.ScheduleException, date time.Time, slot *entity.TimeSlot) *entity.ScheduleException {
	for i := range exceptions {
		exc := &exceptions[i]
		if !exc.IsApproved() {
			continue
		}
		if exc.BlocksWindow(date, slot.StartTime, slot.EndTime) {
			return exc
		}
	}
	return nil
}

// bookedAppointment returns the blocking appointment holding the slot's
// exact (date, start time), or nil. The excluded appointment never blocks,
// so a rescheduled booking can land back on its own vacated slot.
func bookedAppointment(appointments []entity.Appointment, date time.Time, slot *entity.TimeSlot, excludeID *uuid.UUID) *entity.Appointment {
	day := date.Truncate(24 * time.Hour)
	for i := range appointments {
		appt := &appointments[i]
		if !appt.BlocksSlots() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if appt.AppointmentDate.Truncate(24*time.Hour).Equal(day) && appt.StartTime.Equal(slot.StartTime) {
			return appt
		}
	}
	return nil
}

// CollectAvailable flattens the available slots across days in chronological
// order: ascending date, then start time, then slot id.
func CollectAvailable(days []DaySchedule) []entity.TimeSlot {
	available := []entity.TimeSlot{}
	for i := range days {
		for j := range days[i].Slots {
			if days[i].Slots[j].IsAvailable {
				available = append(available, days[i].Slots[j])
			}
		}
	}
	sort.Slice(available, func(i, j int) bool {
		if !available[i].Date.Equal(available[j].Date) {
			return available[i].Date.Before(available[j].Date)
		}
		if !available[i].StartTime.Equal(available[j].StartTime) {
			return available[i].StartTime.Before(available[j].StartTime)
		}
		return available[i].ID < available[j].ID
	})
	return available
}

// NextAvailable returns the first available slot by (date, start time), or
// nil when the range has none.
func NextAvailable(days []DaySchedule) *entity.TimeSlot {
	available := CollectAvailable(days)
	if len(available) == 0 {
		return nil
	}
	return &available[0]
}

// TotalWorkingHours sums (end - start) across working days, in hours.
func TotalWorkingHours(days []DaySchedule) float64 {
	total := 0.0
	for i := range days {
		if days[i].IsWorking && days[i].WorkingDay != nil {
			total += float64(days[i].WorkingDay.WorkingMinutes()) / 60.0
		}
	}
	return total
}
