package service

import (
	"testing"
	"time"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *AvailabilityEngine {
	return NewAvailabilityEngine(NewSlotGenerator())
}

func TestEvaluateDayNonWorking(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	schedule := engine.EvaluateDay(nil, day, nil, nil, AvailabilityOptions{})

	assert.False(t, schedule.IsWorking)
	assert.Empty(t, schedule.Slots)
	assert.Equal(t, "Monday", schedule.DayName)

	offDay := &entity.WorkingDay{IsWorking: false}
	schedule = engine.EvaluateDay(offDay, day, nil, nil, AvailabilityOptions{})
	assert.False(t, schedule.IsWorking)
	assert.Empty(t, schedule.Slots)
}

func TestEvaluateDayAllAvailable(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	schedule := engine.EvaluateDay(testWorkingDay(), day, nil, nil, AvailabilityOptions{})

	assert.True(t, schedule.IsWorking)
	assert.Len(t, schedule.Slots, 16)
	assert.Equal(t, 16, schedule.AvailableSlots)
}

func TestEvaluateDayLeaveOmittedByDefault(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	leave := entity.ScheduleException{
		ID:            uuid.New(),
		ExceptionType: entity.ExceptionVacation,
		Status:        entity.ExceptionStatusApproved,
		StartDate:     day,
		EndDate:       day,
		IsAllDay:      true,
	}

	schedule := engine.EvaluateDay(testWorkingDay(), day, []entity.ScheduleException{leave}, nil, AvailabilityOptions{})

	assert.Empty(t, schedule.Slots)
	assert.Equal(t, 0, schedule.AvailableSlots)
}

func TestEvaluateDayLeaveIncludedWhenRequested(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	leave := entity.ScheduleException{
		ID:            uuid.New(),
		ExceptionType: entity.ExceptionSickLeave,
		Status:        entity.ExceptionStatusApproved,
		StartDate:     day,
		EndDate:       day,
		IsAllDay:      false,
		StartTime:     todPtr("09:00"),
		EndTime:       todPtr("10:00"),
	}

	schedule := engine.EvaluateDay(testWorkingDay(), day, []entity.ScheduleException{leave},
		nil, AvailabilityOptions{IncludeLeave: true})

	require.Len(t, schedule.Slots, 16)
	assert.Equal(t, 14, schedule.AvailableSlots)
	first := schedule.Slots[0]
	assert.False(t, first.IsAvailable)
	assert.Equal(t, entity.UnavailableReasonLeave, first.UnavailableReason)
	assert.Equal(t, entity.ExceptionSickLeave, first.LeaveType)
	assert.False(t, schedule.Slots[1].IsAvailable)
	assert.True(t, schedule.Slots[2].IsAvailable)
}

func TestEvaluateDayPendingExceptionIgnored(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	leave := entity.ScheduleException{
		ID:            uuid.New(),
		ExceptionType: entity.ExceptionVacation,
		Status:        entity.ExceptionStatusPending,
		StartDate:     day,
		EndDate:       day,
		IsAllDay:      true,
	}

	schedule := engine.EvaluateDay(testWorkingDay(), day, []entity.ScheduleException{leave}, nil, AvailabilityOptions{})

	assert.Equal(t, 16, schedule.AvailableSlots)
}

func TestEvaluateDayBookedSlot(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	appt := entity.Appointment{
		ID:              uuid.New(),
		AppointmentDate: day,
		StartTime:       timestr.MustParse("09:30"),
		Duration:        30,
		Status:          entity.AppointmentStatusScheduled,
	}

	schedule := engine.EvaluateDay(testWorkingDay(), day, nil, []entity.Appointment{appt}, AvailabilityOptions{})

	require.Len(t, schedule.Slots, 16)
	assert.Equal(t, 15, schedule.AvailableSlots)
	booked := schedule.Slots[1]
	assert.False(t, booked.IsAvailable)
	assert.Equal(t, entity.UnavailableReasonBooked, booked.UnavailableReason)
	assert.Equal(t, 1, booked.CurrentBookings)
}

func TestEvaluateDayExcludedAppointmentDoesNotBlock(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	appt := entity.Appointment{
		ID:              uuid.New(),
		AppointmentDate: day,
		StartTime:       timestr.MustParse("09:30"),
		Duration:        30,
		Status:          entity.AppointmentStatusScheduled,
	}

	schedule := engine.EvaluateDay(testWorkingDay(), day, nil, []entity.Appointment{appt},
		AvailabilityOptions{ExcludeAppointmentID: &appt.ID})

	assert.Equal(t, 16, schedule.AvailableSlots)
}

func TestEvaluateDayCancelledAppointmentFreesSlot(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	appt := entity.Appointment{
		ID:              uuid.New(),
		AppointmentDate: day,
		StartTime:       timestr.MustParse("09:30"),
		Duration:        30,
		Status:          entity.AppointmentStatusCancelled,
	}

	schedule := engine.EvaluateDay(testWorkingDay(), day, nil, []entity.Appointment{appt}, AvailabilityOptions{})

	assert.Equal(t, 16, schedule.AvailableSlots)
}

func TestEvaluateDayIncludeBreaksMarksBreakSlots(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	workingDay := testWorkingDay()
	workingDay.BreakStart = todPtr("12:00")
	workingDay.BreakEnd = todPtr("13:00")

	schedule := engine.EvaluateDay(workingDay, day, nil, nil, AvailabilityOptions{IncludeBreaks: true})

	// Generation runs through the break; the two slots inside it come back
	// marked unavailable instead of omitted.
	require.Len(t, schedule.Slots, 16)
	assert.Equal(t, 14, schedule.AvailableSlots)

	breakSlots := 0
	for _, slot := range schedule.Slots {
		if slot.UnavailableReason == entity.UnavailableReasonBreak {
			breakSlots++
		}
	}
	assert.Equal(t, 2, breakSlots)
}

func TestEvaluateDayDurationOverride(t *testing.T) {
	engine := newTestEngine()
	day := date(2026, time.January, 5)

	schedule := engine.EvaluateDay(testWorkingDay(), day, nil, nil, AvailabilityOptions{DurationMinutes: 60})

	require.Len(t, schedule.Slots, 8)
	assert.Equal(t, 60, schedule.Slots[0].Duration)
	assert.Equal(t, "10:00", schedule.Slots[0].EndTime.String())
}

func TestResolveWorkingDayNarrowestRangeWins(t *testing.T) {
	day := date(2026, time.January, 5) // Monday

	openEnded := entity.WorkingDay{
		ID:        uuid.New(),
		DayOfWeek: entity.WeekdayMonday,
		IsWorking: true,
		StartTime: timestr.MustParse("09:00"),
		EndTime:   timestr.MustParse("17:00"),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	scoped := entity.WorkingDay{
		ID:             uuid.New(),
		DayOfWeek:      entity.WeekdayMonday,
		IsWorking:      true,
		StartTime:      timestr.MustParse("10:00"),
		EndTime:        timestr.MustParse("14:00"),
		EffectiveFrom:  timePtr(date(2026, time.January, 1)),
		EffectiveUntil: timePtr(date(2026, time.January, 31)),
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	otherWeekday := entity.WorkingDay{
		ID:        uuid.New(),
		DayOfWeek: entity.WeekdayTuesday,
		IsWorking: true,
	}

	got := ResolveWorkingDay([]entity.WorkingDay{openEnded, scoped, otherWeekday}, day)

	require.NotNil(t, got)
	assert.Equal(t, scoped.ID, got.ID)

	// Outside the scoped range the open-ended row applies again.
	got = ResolveWorkingDay([]entity.WorkingDay{openEnded, scoped, otherWeekday}, date(2026, time.February, 2))
	require.NotNil(t, got)
	assert.Equal(t, openEnded.ID, got.ID)
}

func TestResolveWorkingDayTieBreaksOnCreatedAt(t *testing.T) {
	day := date(2026, time.January, 5)

	older := entity.WorkingDay{
		ID:        uuid.New(),
		DayOfWeek: entity.WeekdayMonday,
		IsWorking: true,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := entity.WorkingDay{
		ID:        uuid.New(),
		DayOfWeek: entity.WeekdayMonday,
		IsWorking: true,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	got := ResolveWorkingDay([]entity.WorkingDay{older, newer}, day)
	require.NotNil(t, got)
	assert.Equal(t, newer.ID, got.ID)
}

func TestResolveWorkingDayNoMatch(t *testing.T) {
	days := []entity.WorkingDay{{DayOfWeek: entity.WeekdayTuesday}}
	assert.Nil(t, ResolveWorkingDay(days, date(2026, time.January, 5)))
}

func TestCollectAvailableOrdering(t *testing.T) {
	day1 := date(2026, time.January, 5)
	day2 := date(2026, time.January, 6)

	s1 := makeSlot(day2, "09:00", "09:30")
	s2 := makeSlot(day1, "14:00", "14:30")
	s3 := makeSlot(day1, "09:00", "09:30")
	unavailable := makeSlot(day1, "10:00", "10:30")
	unavailable.MarkUnavailable(entity.UnavailableReasonBooked)

	days := []DaySchedule{
		{Date: day2, Slots: []entity.TimeSlot{s1}},
		{Date: day1, Slots: []entity.TimeSlot{s2, s3, unavailable}},
	}

	available := CollectAvailable(days)

	require.Len(t, available, 3)
	assert.Equal(t, s3.ID, available[0].ID)
	assert.Equal(t, s2.ID, available[1].ID)
	assert.Equal(t, s1.ID, available[2].ID)

	next := NextAvailable(days)
	require.NotNil(t, next)
	assert.Equal(t, s3.ID, next.ID)
}

func TestNextAvailableEmpty(t *testing.T) {
	assert.Nil(t, NextAvailable(nil))
}

func TestTotalWorkingHours(t *testing.T) {
	monday := testWorkingDay() // 09:00-17:00
	halfDay := &entity.WorkingDay{
		IsWorking: true,
		StartTime: timestr.MustParse("09:00"),
		EndTime:   timestr.MustParse("13:30"),
	}

	days := []DaySchedule{
		{IsWorking: true, WorkingDay: monday},
		{IsWorking: true, WorkingDay: halfDay},
		{IsWorking: false},
	}

	assert.InDelta(t, 12.5, TotalWorkingHours(days), 0.001)
}
