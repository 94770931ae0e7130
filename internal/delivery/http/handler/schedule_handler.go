package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *ScheduleHandler) ReplaceSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.ReplaceScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.ReplaceSchedule(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrNoWorkingDays):
			response.BadRequest(w, err.Error())
		case isScheduleValidationError(err):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to replace schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule replaced successfully", schedule)
}

// isScheduleValidationError reports whether the error is a structural problem
// in the submitted schedule rather than a server fault.
func isScheduleValidationError(err error) bool {
	for _, candidate := range []error{
		converter.ErrInvalidTimeFormat,
		converter.ErrInvalidDateFormat,
		entity.ErrWorkingHoursInverted,
		entity.ErrBreakInverted,
		entity.ErrBreakOutsideHours,
		entity.ErrInvalidWeekday,
		entity.ErrInvalidDuration,
		entity.ErrNegativeBuffer,
		entity.ErrEffectiveRangeOrder,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
