package converter

import (
	"errors"
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

const dateFormat = "2006-01-02"

// WorkingDayToResponse converts a WorkingDay entity to WorkingDayResponse DTO
func WorkingDayToResponse(day *entity.WorkingDay) *dto.WorkingDayResponse {
	if day == nil {
		return nil
	}

	response := &dto.WorkingDayResponse{
		ID:                  day.ID,
		DayOfWeek:           int(day.DayOfWeek),
		DayName:             day.DayOfWeek.String(),
		IsWorking:           day.IsWorking,
		MaxAppointments:     day.MaxAppointments,
		AppointmentDuration: day.AppointmentDuration,
		BufferTime:          day.BufferTime,
		Timezone:            day.Timezone,
		RecurrenceType:      string(day.RecurrenceType),
		CreatedAt:           day.CreatedAt,
		UpdatedAt:           day.UpdatedAt,
	}

	if day.IsWorking {
		response.StartTime = day.StartTime.String()
		response.EndTime = day.EndTime.String()
	}
	if day.BreakStart != nil {
		response.BreakStart = day.BreakStart.String()
	}
	if day.BreakEnd != nil {
		response.BreakEnd = day.BreakEnd.String()
	}
	if day.EffectiveFrom != nil {
		response.EffectiveFrom = day.EffectiveFrom.Format(dateFormat)
	}
	if day.EffectiveUntil != nil {
		response.EffectiveUntil = day.EffectiveUntil.Format(dateFormat)
	}

	return response
}

// WorkingDaysToResponses converts a slice of WorkingDay entities to slice of WorkingDayResponse DTOs
func WorkingDaysToResponses(days []entity.WorkingDay) []dto.WorkingDayResponse {
	responses := make([]dto.WorkingDayResponse, len(days))
	for i, day := range days {
		resp := WorkingDayToResponse(&day)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// WorkingDaysToScheduleResponse wraps a doctor's working days into a ScheduleResponse DTO
func WorkingDaysToScheduleResponse(doctorID uuid.UUID, days []entity.WorkingDay) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		DoctorID:    doctorID,
		WorkingDays: WorkingDaysToResponses(days),
		Total:       len(days),
	}
}

// ReplaceScheduleRequestToWorkingDays converts a ReplaceScheduleRequest into WorkingDay entities
func ReplaceScheduleRequestToWorkingDays(doctorID uuid.UUID, request *dto.ReplaceScheduleRequest) ([]entity.WorkingDay, error) {
	days := make([]entity.WorkingDay, 0, len(request.WorkingDays))
	for i := range request.WorkingDays {
		day, err := WorkingDayRequestToEntity(doctorID, &request.WorkingDays[i])
		if err != nil {
			return nil, err
		}
		days = append(days, *day)
	}
	return days, nil
}

// WorkingDayRequestToEntity converts one WorkingDayRequest to a WorkingDay entity
func WorkingDayRequestToEntity(doctorID uuid.UUID, request *dto.WorkingDayRequest) (*entity.WorkingDay, error) {
	day := &entity.WorkingDay{
		ID:                  uuid.New(),
		DoctorID:            doctorID,
		DayOfWeek:           entity.Weekday(request.DayOfWeek),
		IsWorking:           request.IsWorking,
		MaxAppointments:     request.MaxAppointments,
		AppointmentDuration: request.AppointmentDuration,
		BufferTime:          request.BufferTime,
		Timezone:            request.Timezone,
		RecurrenceType:      entity.RecurrenceType(request.RecurrenceType),
	}
	if day.Timezone == "" {
		day.Timezone = "UTC"
	}
	if day.RecurrenceType == "" {
		day.RecurrenceType = entity.RecurrenceWeekly
	}

	if request.IsWorking {
		start, err := timestr.Parse(request.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := timestr.Parse(request.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		day.StartTime = start
		day.EndTime = end
	}

	if request.BreakStart != "" && request.BreakEnd != "" {
		breakStart, err := timestr.Parse(request.BreakStart)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		breakEnd, err := timestr.Parse(request.BreakEnd)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		day.BreakStart = &breakStart
		day.BreakEnd = &breakEnd
	}

	if request.EffectiveFrom != "" {
		from, err := time.Parse(dateFormat, request.EffectiveFrom)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		day.EffectiveFrom = &from
	}
	if request.EffectiveUntil != "" {
		until, err := time.Parse(dateFormat, request.EffectiveUntil)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		day.EffectiveUntil = &until
	}

	return day, nil
}
