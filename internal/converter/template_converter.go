package converter

import (
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTemplateRequestToEntity converts a CreateTemplateRequest to a ScheduleTemplate entity
func CreateTemplateRequestToEntity(doctorID uuid.UUID, request *dto.CreateTemplateRequest) (*entity.ScheduleTemplate, error) {
	workingDays := make(entity.TemplateWorkingDays, 0, len(request.WorkingDays))
	for i := range request.WorkingDays {
		day, err := WorkingDayRequestToEntity(doctorID, &request.WorkingDays[i])
		if err != nil {
			return nil, err
		}
		workingDays = append(workingDays, entity.TemplateWorkingDay{
			DayOfWeek:           day.DayOfWeek,
			IsWorking:           day.IsWorking,
			StartTime:           day.StartTime,
			EndTime:             day.EndTime,
			BreakStart:          day.BreakStart,
			BreakEnd:            day.BreakEnd,
			MaxAppointments:     day.MaxAppointments,
			AppointmentDuration: day.AppointmentDuration,
			BufferTime:          day.BufferTime,
			Timezone:            day.Timezone,
		})
	}

	rule := entity.RecurrenceRule{Type: entity.RecurrenceWeekly, Interval: 1}
	if request.RecurrenceRule != nil {
		parsed, err := RecurrenceRuleRequestToEntity(request.RecurrenceRule)
		if err != nil {
			return nil, err
		}
		rule = *parsed
	}

	return &entity.ScheduleTemplate{
		ID:             uuid.New(),
		DoctorID:       doctorID,
		Name:           request.Name,
		Description:    request.Description,
		WorkingDays:    workingDays,
		RecurrenceRule: rule,
		IsDefault:      request.IsDefault,
	}, nil
}

// RecurrenceRuleRequestToEntity converts a RecurrenceRuleRequest to a RecurrenceRule
func RecurrenceRuleRequestToEntity(request *dto.RecurrenceRuleRequest) (*entity.RecurrenceRule, error) {
	rule := &entity.RecurrenceRule{
		Type:        entity.RecurrenceType(request.Type),
		Interval:    request.Interval,
		DaysOfMonth: request.DaysOfMonth,
	}
	if rule.Interval == 0 {
		rule.Interval = 1
	}
	for _, d := range request.DaysOfWeek {
		rule.DaysOfWeek = append(rule.DaysOfWeek, entity.Weekday(d))
	}
	if request.EndDate != "" {
		endDate, err := time.Parse(dateFormat, request.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		rule.EndDate = &endDate
	}
	if request.MaxOccurrences > 0 {
		limit := request.MaxOccurrences
		rule.MaxOccurrences = &limit
	}
	return rule, nil
}

// TemplateToResponse converts a ScheduleTemplate entity to TemplateResponse DTO
func TemplateToResponse(template *entity.ScheduleTemplate) *dto.TemplateResponse {
	if template == nil {
		return nil
	}

	days := make([]entity.WorkingDay, len(template.WorkingDays))
	for i := range template.WorkingDays {
		days[i] = template.WorkingDays[i].AsWorkingDay(template.DoctorID)
	}

	return &dto.TemplateResponse{
		ID:          template.ID,
		DoctorID:    template.DoctorID,
		Name:        template.Name,
		Description: template.Description,
		WorkingDays: WorkingDaysToResponses(days),
		IsDefault:   template.IsDefault,
		CreatedAt:   template.CreatedAt,
		UpdatedAt:   template.UpdatedAt,
	}
}

// TemplatesToResponses converts a slice of ScheduleTemplate entities to slice of TemplateResponse DTOs
func TemplatesToResponses(templates []entity.ScheduleTemplate) []dto.TemplateResponse {
	responses := make([]dto.TemplateResponse, len(templates))
	for i := range templates {
		resp := TemplateToResponse(&templates[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
