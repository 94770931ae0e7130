package converter

import (
	"testing"
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingDayRequestToEntity(t *testing.T) {
	doctorID := uuid.New()

	day, err := WorkingDayRequestToEntity(doctorID, &dto.WorkingDayRequest{
		DayOfWeek:           1,
		IsWorking:           true,
		StartTime:           "09:00",
		EndTime:             "17:00",
		BreakStart:          "12:00",
		BreakEnd:            "13:00",
		AppointmentDuration: 30,
		EffectiveFrom:       "2026-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, doctorID, day.DoctorID)
	assert.Equal(t, entity.WeekdayMonday, day.DayOfWeek)
	assert.Equal(t, "09:00", day.StartTime.String())
	assert.Equal(t, "17:00", day.EndTime.String())
	require.NotNil(t, day.BreakStart)
	assert.Equal(t, "12:00", day.BreakStart.String())
	assert.NotEqual(t, uuid.Nil, day.ID)
	require.NotNil(t, day.EffectiveFrom)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *day.EffectiveFrom)

	// Defaults fill in when the request omits them.
	assert.Equal(t, "UTC", day.Timezone)
	assert.Equal(t, entity.RecurrenceWeekly, day.RecurrenceType)
}

func TestWorkingDayRequestToEntityErrors(t *testing.T) {
	doctorID := uuid.New()

	_, err := WorkingDayRequestToEntity(doctorID, &dto.WorkingDayRequest{
		DayOfWeek: 1,
		IsWorking: true,
		StartTime: "9am",
		EndTime:   "17:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = WorkingDayRequestToEntity(doctorID, &dto.WorkingDayRequest{
		DayOfWeek:           1,
		IsWorking:           true,
		StartTime:           "09:00",
		EndTime:             "17:00",
		AppointmentDuration: 30,
		EffectiveFrom:       "01/01/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestWorkingDayRequestToEntityNonWorking(t *testing.T) {
	day, err := WorkingDayRequestToEntity(uuid.New(), &dto.WorkingDayRequest{
		DayOfWeek: 0,
		IsWorking: false,
	})
	require.NoError(t, err)
	assert.False(t, day.IsWorking)
	assert.True(t, day.StartTime.IsZero())
	assert.Nil(t, day.BreakStart)
}

func TestWorkingDayToResponse(t *testing.T) {
	start := timestr.MustParse("12:00")
	end := timestr.MustParse("13:00")
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	day := &entity.WorkingDay{
		ID:                  uuid.New(),
		DayOfWeek:           entity.WeekdayWednesday,
		IsWorking:           true,
		StartTime:           timestr.MustParse("09:00"),
		EndTime:             timestr.MustParse("17:00"),
		BreakStart:          &start,
		BreakEnd:            &end,
		AppointmentDuration: 30,
		Timezone:            "UTC",
		RecurrenceType:      entity.RecurrenceWeekly,
		EffectiveFrom:       &from,
	}

	resp := WorkingDayToResponse(day)
	require.NotNil(t, resp)
	assert.Equal(t, 3, resp.DayOfWeek)
	assert.Equal(t, "Wednesday", resp.DayName)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "12:00", resp.BreakStart)
	assert.Equal(t, "2026-01-01", resp.EffectiveFrom)
	assert.Empty(t, resp.EffectiveUntil)

	assert.Nil(t, WorkingDayToResponse(nil))
}

func TestWorkingDayToResponseNonWorkingOmitsTimes(t *testing.T) {
	day := &entity.WorkingDay{DayOfWeek: entity.WeekdaySunday, IsWorking: false}

	resp := WorkingDayToResponse(day)
	require.NotNil(t, resp)
	assert.False(t, resp.IsWorking)
	assert.Empty(t, resp.StartTime)
	assert.Empty(t, resp.EndTime)
}

func TestWorkingDaysToScheduleResponse(t *testing.T) {
	doctorID := uuid.New()
	days := []entity.WorkingDay{
		{DayOfWeek: entity.WeekdayMonday, IsWorking: true,
			StartTime: timestr.MustParse("09:00"), EndTime: timestr.MustParse("17:00")},
		{DayOfWeek: entity.WeekdaySunday, IsWorking: false},
	}

	resp := WorkingDaysToScheduleResponse(doctorID, days)
	assert.Equal(t, doctorID, resp.DoctorID)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.WorkingDays, 2)
	assert.Equal(t, "Monday", resp.WorkingDays[0].DayName)
}
