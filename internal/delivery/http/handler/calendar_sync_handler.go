package handler

import (
	"errors"
	"net/http"

	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CalendarSyncHandler struct {
	calendarSyncUsecase usecase.CalendarSyncUsecase
}

func NewCalendarSyncHandler(calendarSyncUsecase usecase.CalendarSyncUsecase) *CalendarSyncHandler {
	return &CalendarSyncHandler{
		calendarSyncUsecase: calendarSyncUsecase,
	}
}

func (h *CalendarSyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	integrationID, err := uuid.Parse(vars["integrationId"])
	if err != nil {
		response.BadRequest(w, "Invalid integration ID")
		return
	}

	result, err := h.calendarSyncUsecase.Sync(r.Context(), doctorID, integrationID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrIntegrationNotFound):
			response.NotFound(w, "Calendar integration not found")
		case errors.Is(err, usecase.ErrIntegrationNotOwned):
			response.Forbidden(w, "Calendar integration does not belong to this doctor")
		case errors.Is(err, usecase.ErrSyncDisabled):
			response.Conflict(w, "Calendar sync is disabled for this integration")
		case errors.Is(err, usecase.ErrExternalSync):
			response.ServiceUnavailable(w, "External calendar provider unavailable, availability flagged stale")
		default:
			response.InternalServerError(w, "Failed to sync calendar")
		}
		return
	}

	response.Success(w, http.StatusOK, "Calendar synced successfully", result)
}

func (h *CalendarSyncHandler) GetIntegrations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	integrations, err := h.calendarSyncUsecase.GetIntegrations(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get calendar integrations")
		return
	}

	response.Success(w, http.StatusOK, "Integrations retrieved successfully", integrations)
}
