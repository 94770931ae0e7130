package entity

import (
	"testing"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/stretchr/testify/assert"
)

func TestConflictLifecycle(t *testing.T) {
	now := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)

	c := ScheduleConflict{Status: ConflictStatusPending}
	assert.False(t, c.IsTerminal())

	assert.NoError(t, c.Resolve(ResolutionManual, "moved the slot", now))
	assert.True(t, c.IsTerminal())
	assert.Equal(t, ConflictStatusResolved, c.Status)
	assert.Equal(t, ResolutionManual, *c.ResolutionMethod)
	assert.Equal(t, &now, c.ResolvedAt)

	// Terminal conflicts stay terminal.
	assert.ErrorIs(t, c.Resolve(ResolutionManual, "again", now), ErrConflictAlreadyTerminal)
	assert.ErrorIs(t, c.Ignore("noise", now), ErrConflictAlreadyTerminal)

	ignored := ScheduleConflict{Status: ConflictStatusPending}
	assert.NoError(t, ignored.Ignore("expected while on rotation", now))
	assert.Equal(t, ConflictStatusIgnored, ignored.Status)
	assert.Nil(t, ignored.ResolutionMethod)
}

func TestResolutionMethodValid(t *testing.T) {
	assert.True(t, ResolutionAutoReschedule.Valid())
	assert.True(t, ResolutionManual.Valid())
	assert.True(t, ResolutionCancel.Valid())
	assert.False(t, ResolutionMethod("DELETE_EVERYTHING").Valid())
}

func TestScheduleTemplateValidate(t *testing.T) {
	template := ScheduleTemplate{
		RecurrenceRule: RecurrenceRule{Type: RecurrenceWeekly, Interval: 1},
	}
	assert.ErrorIs(t, template.Validate(), ErrTemplateEmpty)

	day := TemplateWorkingDay{
		DayOfWeek:           WeekdayMonday,
		IsWorking:           true,
		StartTime:           timestr.MustParse("09:00"),
		EndTime:             timestr.MustParse("17:00"),
		AppointmentDuration: 30,
	}
	template.WorkingDays = TemplateWorkingDays{day, day}
	assert.ErrorIs(t, template.Validate(), ErrTemplateDuplicateDay)

	template.WorkingDays = TemplateWorkingDays{day}
	assert.NoError(t, template.Validate())

	bad := day
	bad.DayOfWeek = WeekdayTuesday
	bad.AppointmentDuration = 5
	template.WorkingDays = TemplateWorkingDays{day, bad}
	assert.ErrorIs(t, template.Validate(), ErrInvalidDuration)

	template.WorkingDays = TemplateWorkingDays{day}
	template.RecurrenceRule.Interval = 0
	assert.ErrorIs(t, template.Validate(), ErrInvalidRecurrenceInterval)
}
