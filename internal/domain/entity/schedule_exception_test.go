package entity

import (
	"testing"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/stretchr/testify/assert"
)

func validException() ScheduleException {
	return ScheduleException{
		ExceptionType: ExceptionVacation,
		Status:        ExceptionStatusApproved,
		StartDate:     time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, time.January, 9, 0, 0, 0, 0, time.UTC),
		IsAllDay:      true,
	}
}

func TestScheduleExceptionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScheduleException)
		wantErr error
	}{
		{"valid all-day", func(e *ScheduleException) {}, nil},
		{"unknown type", func(e *ScheduleException) { e.ExceptionType = "LUNCH" }, ErrInvalidException},
		{"inverted dates", func(e *ScheduleException) {
			e.StartDate, e.EndDate = e.EndDate, e.StartDate
		}, ErrExceptionDateOrder},
		{"timed without times", func(e *ScheduleException) { e.IsAllDay = false }, ErrExceptionTimeOrder},
		{"timed with inverted times", func(e *ScheduleException) {
			e.IsAllDay = false
			e.StartTime = todPtr("15:00")
			e.EndTime = todPtr("14:00")
		}, ErrExceptionTimeOrder},
		{"valid timed", func(e *ScheduleException) {
			e.IsAllDay = false
			e.StartTime = todPtr("14:00")
			e.EndTime = todPtr("16:00")
		}, nil},
		{"recurring with bad rule", func(e *ScheduleException) {
			e.IsRecurring = true
			e.RecurrenceRule = &RecurrenceRule{Type: RecurrenceWeekly, Interval: 0}
		}, ErrInvalidRecurrenceInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validException()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExceptionBlocksWindow(t *testing.T) {
	covered := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

	allDay := validException()
	assert.True(t, allDay.BlocksWindow(covered, timestr.MustParse("09:00"), timestr.MustParse("09:30")))
	assert.False(t, allDay.BlocksWindow(outside, timestr.MustParse("09:00"), timestr.MustParse("09:30")))

	timed := validException()
	timed.IsAllDay = false
	timed.StartTime = todPtr("14:00")
	timed.EndTime = todPtr("16:00")

	assert.True(t, timed.BlocksWindow(covered, timestr.MustParse("15:30"), timestr.MustParse("16:30")))
	assert.False(t, timed.BlocksWindow(covered, timestr.MustParse("09:00"), timestr.MustParse("09:30")))
	// Touching the window boundary does not block.
	assert.False(t, timed.BlocksWindow(covered, timestr.MustParse("16:00"), timestr.MustParse("16:30")))
}

func TestDateRange(t *testing.T) {
	r := DateRange{
		Start: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 7, r.Days())
	assert.True(t, r.Contains(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)))
}
