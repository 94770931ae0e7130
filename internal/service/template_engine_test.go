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

func testTemplate(doctorID uuid.UUID, rule entity.RecurrenceRule) *entity.ScheduleTemplate {
	return &entity.ScheduleTemplate{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Name:     "standard week",
		WorkingDays: entity.TemplateWorkingDays{
			{
				DayOfWeek:           entity.WeekdayMonday,
				IsWorking:           true,
				StartTime:           timestr.MustParse("09:00"),
				EndTime:             timestr.MustParse("17:00"),
				AppointmentDuration: 30,
			},
			{
				DayOfWeek:           entity.WeekdayWednesday,
				IsWorking:           true,
				StartTime:           timestr.MustParse("10:00"),
				EndTime:             timestr.MustParse("16:00"),
				AppointmentDuration: 45,
			},
		},
		RecurrenceRule: rule,
	}
}

func TestPlanApplicationWeeklyMapsConfigsDirectly(t *testing.T) {
	engine := NewTemplateEngine()
	doctorID := uuid.New()
	template := testTemplate(doctorID, entity.RecurrenceRule{Type: entity.RecurrenceWeekly, Interval: 1})

	start := date(2026, time.January, 5)
	end := date(2026, time.March, 1)

	plan := engine.PlanApplication(template, nil, start, &end)

	require.Len(t, plan, 2)
	byWeekday := map[entity.Weekday]entity.WorkingDay{}
	for _, wd := range plan {
		byWeekday[wd.DayOfWeek] = wd
	}

	monday := byWeekday[entity.WeekdayMonday]
	assert.Equal(t, doctorID, monday.DoctorID)
	assert.Equal(t, "09:00", monday.StartTime.String())
	assert.Equal(t, 30, monday.AppointmentDuration)
	assert.Equal(t, entity.RecurrenceWeekly, monday.RecurrenceType)
	require.NotNil(t, monday.EffectiveFrom)
	require.NotNil(t, monday.EffectiveUntil)
	assert.Equal(t, start, *monday.EffectiveFrom)
	assert.Equal(t, end, *monday.EffectiveUntil)
	assert.NotEqual(t, uuid.Nil, monday.ID)

	wednesday := byWeekday[entity.WeekdayWednesday]
	assert.Equal(t, "10:00", wednesday.StartTime.String())
	assert.Equal(t, 45, wednesday.AppointmentDuration)
}

func TestPlanApplicationOpenEndedWeekly(t *testing.T) {
	engine := NewTemplateEngine()
	template := testTemplate(uuid.New(), entity.RecurrenceRule{Type: entity.RecurrenceWeekly, Interval: 1})

	plan := engine.PlanApplication(template, nil, date(2026, time.January, 5), nil)

	require.Len(t, plan, 2)
	for _, wd := range plan {
		require.NotNil(t, wd.EffectiveFrom)
		assert.Nil(t, wd.EffectiveUntil)
	}
}

func TestPlanApplicationReusesExistingRows(t *testing.T) {
	engine := NewTemplateEngine()
	doctorID := uuid.New()
	template := testTemplate(doctorID, entity.RecurrenceRule{Type: entity.RecurrenceWeekly, Interval: 1})

	existingID := uuid.New()
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	existing := []entity.WorkingDay{{
		ID:        existingID,
		DoctorID:  doctorID,
		DayOfWeek: entity.WeekdayMonday,
		CreatedAt: createdAt,
	}}

	start := date(2026, time.January, 5)
	plan := engine.PlanApplication(template, existing, start, nil)

	require.Len(t, plan, 2)
	for _, wd := range plan {
		switch wd.DayOfWeek {
		case entity.WeekdayMonday:
			// The existing row keeps its identity so re-applies update in place.
			assert.Equal(t, existingID, wd.ID)
			assert.Equal(t, createdAt, wd.CreatedAt)
		case entity.WeekdayWednesday:
			assert.NotEqual(t, uuid.Nil, wd.ID)
			assert.NotEqual(t, existingID, wd.ID)
		}
	}
}

func TestPlanApplicationIdempotent(t *testing.T) {
	engine := NewTemplateEngine()
	doctorID := uuid.New()
	template := testTemplate(doctorID, entity.RecurrenceRule{Type: entity.RecurrenceWeekly, Interval: 1})

	start := date(2026, time.January, 5)
	end := date(2026, time.February, 1)

	first := engine.PlanApplication(template, nil, start, &end)
	second := engine.PlanApplication(template, first, start, &end)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].DayOfWeek, second[i].DayOfWeek)
		assert.Equal(t, first[i].EffectiveFrom, second[i].EffectiveFrom)
		assert.Equal(t, first[i].EffectiveUntil, second[i].EffectiveUntil)
	}
}

func TestPlanApplicationNonWeeklyNarrowsToOccurrenceSpan(t *testing.T) {
	engine := NewTemplateEngine()
	doctorID := uuid.New()
	// Every other week the pattern alternates, so the effective range of each
	// weekday narrows to its first and last actual occurrence.
	template := testTemplate(doctorID, entity.RecurrenceRule{
		Type:       entity.RecurrenceWeekly,
		Interval:   2,
		DaysOfWeek: []entity.Weekday{entity.WeekdayMonday, entity.WeekdayWednesday},
	})

	start := date(2026, time.January, 5) // Monday, occurrence weeks: Jan 5, Jan 19
	end := date(2026, time.January, 25)

	plan := engine.PlanApplication(template, nil, start, &end)

	require.Len(t, plan, 2)
	byWeekday := map[entity.Weekday]entity.WorkingDay{}
	for _, wd := range plan {
		byWeekday[wd.DayOfWeek] = wd
	}

	monday := byWeekday[entity.WeekdayMonday]
	assert.Equal(t, date(2026, time.January, 5), *monday.EffectiveFrom)
	assert.Equal(t, date(2026, time.January, 19), *monday.EffectiveUntil)

	wednesday := byWeekday[entity.WeekdayWednesday]
	assert.Equal(t, date(2026, time.January, 7), *wednesday.EffectiveFrom)
	assert.Equal(t, date(2026, time.January, 21), *wednesday.EffectiveUntil)
}

func TestPlanApplicationSkipsWeekdaysWithoutOccurrences(t *testing.T) {
	engine := NewTemplateEngine()
	doctorID := uuid.New()
	// The rule only fires on Mondays, so the Wednesday config never
	// materializes.
	template := testTemplate(doctorID, entity.RecurrenceRule{
		Type:       entity.RecurrenceWeekly,
		Interval:   2,
		DaysOfWeek: []entity.Weekday{entity.WeekdayMonday},
	})

	start := date(2026, time.January, 5)
	end := date(2026, time.January, 25)

	plan := engine.PlanApplication(template, nil, start, &end)

	require.Len(t, plan, 1)
	assert.Equal(t, entity.WeekdayMonday, plan[0].DayOfWeek)
}
