package converter

import (
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
)

// ConflictToResponse converts a ScheduleConflict entity to ConflictResponse DTO
func ConflictToResponse(conflict *entity.ScheduleConflict) *dto.ConflictResponse {
	if conflict == nil {
		return nil
	}

	response := &dto.ConflictResponse{
		ID:                       conflict.ID,
		DoctorID:                 conflict.DoctorID,
		ConflictType:             string(conflict.ConflictType),
		AppointmentID:            conflict.AppointmentID,
		ConflictingAppointmentID: conflict.ConflictingAppointmentID,
		ConflictDate:             conflict.ConflictDate.Format(dateFormat),
		Severity:                 string(conflict.Severity),
		Status:                   string(conflict.Status),
		AutoFixable:              conflict.AutoFixable,
		AffectedSlotIDs:          conflict.AffectedSlotIDs,
		Description:              conflict.Description,
		SuggestedFix:             conflict.SuggestedFix,
		ResolutionNotes:          conflict.ResolutionNotes,
		ResolvedAt:               conflict.ResolvedAt,
		CreatedAt:                conflict.CreatedAt,
	}
	if conflict.ConflictStart != nil {
		response.ConflictStart = conflict.ConflictStart.String()
	}
	if conflict.ConflictEnd != nil {
		response.ConflictEnd = conflict.ConflictEnd.String()
	}
	if conflict.ResolutionMethod != nil {
		response.ResolutionMethod = string(*conflict.ResolutionMethod)
	}
	return response
}

// ConflictsToResponses converts a slice of ScheduleConflict entities to slice of ConflictResponse DTOs
func ConflictsToResponses(conflicts []entity.ScheduleConflict) []dto.ConflictResponse {
	responses := make([]dto.ConflictResponse, len(conflicts))
	for i := range conflicts {
		resp := ConflictToResponse(&conflicts[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
