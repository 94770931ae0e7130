package entity

import (
	"testing"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/stretchr/testify/assert"
)

func todPtr(s string) *timestr.TimeOfDay {
	t := timestr.MustParse(s)
	return &t
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validWorkingDay() WorkingDay {
	return WorkingDay{
		DayOfWeek:           WeekdayMonday,
		IsWorking:           true,
		StartTime:           timestr.MustParse("09:00"),
		EndTime:             timestr.MustParse("17:00"),
		AppointmentDuration: 30,
	}
}

func TestWorkingDayValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkingDay)
		wantErr error
	}{
		{"valid", func(wd *WorkingDay) {}, nil},
		{"invalid weekday", func(wd *WorkingDay) { wd.DayOfWeek = Weekday(9) }, ErrInvalidWeekday},
		{"inverted hours", func(wd *WorkingDay) {
			wd.StartTime = timestr.MustParse("17:00")
			wd.EndTime = timestr.MustParse("09:00")
		}, ErrWorkingHoursInverted},
		{"equal start and end", func(wd *WorkingDay) {
			wd.EndTime = wd.StartTime
		}, ErrWorkingHoursInverted},
		{"duration too short", func(wd *WorkingDay) { wd.AppointmentDuration = 10 }, ErrInvalidDuration},
		{"duration too long", func(wd *WorkingDay) { wd.AppointmentDuration = 500 }, ErrInvalidDuration},
		{"negative buffer", func(wd *WorkingDay) { wd.BufferTime = -5 }, ErrNegativeBuffer},
		{"inverted break", func(wd *WorkingDay) {
			wd.BreakStart = todPtr("13:00")
			wd.BreakEnd = todPtr("12:00")
		}, ErrBreakInverted},
		{"break outside hours", func(wd *WorkingDay) {
			wd.BreakStart = todPtr("08:00")
			wd.BreakEnd = todPtr("09:30")
		}, ErrBreakOutsideHours},
		{"inverted effective range", func(wd *WorkingDay) {
			wd.EffectiveFrom = datePtr(2026, time.February, 1)
			wd.EffectiveUntil = datePtr(2026, time.January, 1)
		}, ErrEffectiveRangeOrder},
		{"non-working day skips hour checks", func(wd *WorkingDay) {
			wd.IsWorking = false
			wd.StartTime = timestr.TimeOfDay{}
			wd.EndTime = timestr.TimeOfDay{}
			wd.AppointmentDuration = 0
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := validWorkingDay()
			tt.mutate(&wd)
			err := wd.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWorkingDayEffectiveOn(t *testing.T) {
	wd := validWorkingDay()
	wd.EffectiveFrom = datePtr(2026, time.January, 1)
	wd.EffectiveUntil = datePtr(2026, time.January, 31)

	monday := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	februaryMonday := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, wd.EffectiveOn(monday))
	assert.False(t, wd.EffectiveOn(tuesday), "weekday mismatch")
	assert.False(t, wd.EffectiveOn(februaryMonday), "outside effective range")

	// Open-ended ranges apply on any matching weekday.
	wd.EffectiveFrom = nil
	wd.EffectiveUntil = nil
	assert.True(t, wd.EffectiveOn(februaryMonday))
}

func TestWorkingDayEffectiveRangeDays(t *testing.T) {
	wd := validWorkingDay()
	assert.Equal(t, int(^uint(0)>>1), wd.EffectiveRangeDays(), "open-ended counts as unbounded")

	wd.EffectiveFrom = datePtr(2026, time.January, 1)
	wd.EffectiveUntil = datePtr(2026, time.January, 31)
	assert.Equal(t, 31, wd.EffectiveRangeDays())
}

func TestWorkingDayWorkingMinutes(t *testing.T) {
	wd := validWorkingDay()
	assert.Equal(t, 480, wd.WorkingMinutes())

	wd.IsWorking = false
	assert.Equal(t, 0, wd.WorkingMinutes())
}

func TestHasBreak(t *testing.T) {
	wd := validWorkingDay()
	assert.False(t, wd.HasBreak())

	wd.BreakStart = todPtr("12:00")
	wd.BreakEnd = todPtr("13:00")
	assert.True(t, wd.HasBreak())

	wd.BreakEnd = todPtr("12:00")
	assert.False(t, wd.HasBreak(), "degenerate break is no break")
}
