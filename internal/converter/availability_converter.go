package converter

import (
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/service"

	"github.com/google/uuid"
)

// TimeSlotToResponse converts a TimeSlot entity to TimeSlotResponse DTO
func TimeSlotToResponse(slot *entity.TimeSlot) *dto.TimeSlotResponse {
	if slot == nil {
		return nil
	}
	return &dto.TimeSlotResponse{
		ID:                slot.ID,
		Date:              slot.Date.Format(dateFormat),
		StartTime:         slot.StartTime.String(),
		EndTime:           slot.EndTime.String(),
		Duration:          slot.Duration,
		IsAvailable:       slot.IsAvailable,
		UnavailableReason: slot.UnavailableReason,
		LeaveType:         string(slot.LeaveType),
		Type:              string(slot.Type),
	}
}

// TimeSlotsToResponses converts a slice of TimeSlot entities to slice of TimeSlotResponse DTOs
func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i := range slots {
		responses[i] = *TimeSlotToResponse(&slots[i])
	}
	return responses
}

// DayScheduleToResponse converts a DaySchedule to DayScheduleResponse DTO
func DayScheduleToResponse(day *service.DaySchedule) *dto.DayScheduleResponse {
	if day == nil {
		return nil
	}
	return &dto.DayScheduleResponse{
		Date:           day.Date.Format(dateFormat),
		DayName:        day.DayName,
		IsWorking:      day.IsWorking,
		Slots:          TimeSlotsToResponses(day.Slots),
		AvailableSlots: day.AvailableSlots,
	}
}

// AvailabilityToResponse assembles the full range roll-up from evaluated days
func AvailabilityToResponse(doctorID uuid.UUID, dateRange entity.DateRange, days []service.DaySchedule, conflicts []entity.ScheduleConflict) *dto.AvailabilityResponse {
	dayResponses := make([]dto.DayScheduleResponse, len(days))
	for i := range days {
		dayResponses[i] = *DayScheduleToResponse(&days[i])
	}

	available := service.CollectAvailable(days)

	response := &dto.AvailabilityResponse{
		DoctorID:            doctorID,
		StartDate:           dateRange.Start.Format(dateFormat),
		EndDate:             dateRange.End.Format(dateFormat),
		Days:                dayResponses,
		AvailableSlots:      TimeSlotsToResponses(available),
		TotalWorkingHours:   service.TotalWorkingHours(days),
		TotalAvailableSlots: len(available),
		Conflicts:           ConflictsToResponses(conflicts),
		GeneratedAt:         time.Now().UTC(),
	}
	if next := service.NextAvailable(days); next != nil {
		response.NextAvailableSlot = TimeSlotToResponse(next)
	}
	return response
}
