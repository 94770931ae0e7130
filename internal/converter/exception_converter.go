package converter

import (
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// CreateExceptionRequestToEntity converts a CreateExceptionRequest to a ScheduleException entity
func CreateExceptionRequestToEntity(doctorID uuid.UUID, request *dto.CreateExceptionRequest) (*entity.ScheduleException, error) {
	startDate, err := time.Parse(dateFormat, request.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateFormat, request.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	exception := &entity.ScheduleException{
		ID:                  uuid.New(),
		DoctorID:            doctorID,
		ExceptionType:       entity.ExceptionType(request.ExceptionType),
		Status:              entity.ExceptionStatus(request.Status),
		StartDate:           startDate,
		EndDate:             endDate,
		IsAllDay:            true,
		IsRecurring:         request.IsRecurring,
		AffectsAppointments: true,
		Reason:              request.Reason,
	}
	if exception.Status == "" {
		exception.Status = entity.ExceptionStatusApproved
	}
	if request.IsAllDay != nil {
		exception.IsAllDay = *request.IsAllDay
	}
	if request.AffectsAppointments != nil {
		exception.AffectsAppointments = *request.AffectsAppointments
	}

	if !exception.IsAllDay {
		startTime, err := timestr.Parse(request.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		endTime, err := timestr.Parse(request.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		exception.StartTime = &startTime
		exception.EndTime = &endTime
	}

	if request.IsRecurring && request.RecurrenceRule != nil {
		rule, err := RecurrenceRuleRequestToEntity(request.RecurrenceRule)
		if err != nil {
			return nil, err
		}
		exception.RecurrenceRule = rule
	}

	return exception, nil
}

// ExceptionToResponse converts a ScheduleException entity to ExceptionResponse DTO
func ExceptionToResponse(exception *entity.ScheduleException) *dto.ExceptionResponse {
	if exception == nil {
		return nil
	}

	response := &dto.ExceptionResponse{
		ID:                  exception.ID,
		DoctorID:            exception.DoctorID,
		ExceptionType:       string(exception.ExceptionType),
		Status:              string(exception.Status),
		StartDate:           exception.StartDate.Format(dateFormat),
		EndDate:             exception.EndDate.Format(dateFormat),
		IsAllDay:            exception.IsAllDay,
		IsRecurring:         exception.IsRecurring,
		AffectsAppointments: exception.AffectsAppointments,
		Reason:              exception.Reason,
		IntegrationID:       exception.IntegrationID,
		CreatedAt:           exception.CreatedAt,
		UpdatedAt:           exception.UpdatedAt,
	}
	if exception.StartTime != nil {
		response.StartTime = exception.StartTime.String()
	}
	if exception.EndTime != nil {
		response.EndTime = exception.EndTime.String()
	}
	return response
}

// ExceptionsToResponses converts a slice of ScheduleException entities to slice of ExceptionResponse DTOs
func ExceptionsToResponses(exceptions []entity.ScheduleException) []dto.ExceptionResponse {
	responses := make([]dto.ExceptionResponse, len(exceptions))
	for i := range exceptions {
		resp := ExceptionToResponse(&exceptions[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
