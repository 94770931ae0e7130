package handler

import (
	"net/http"
	"strconv"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	req := dto.ResolveAvailabilityRequest{
		StartDate:     r.URL.Query().Get("start_date"),
		EndDate:       r.URL.Query().Get("end_date"),
		IncludeBreaks: r.URL.Query().Get("include_breaks") == "true",
		IncludeLeave:  r.URL.Query().Get("include_leave") == "true",
	}
	if raw := r.URL.Query().Get("duration_minutes"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid duration_minutes")
			return
		}
		req.DurationMinutes = duration
	}
	if raw := r.URL.Query().Get("exclude_appointment_id"); raw != "" {
		excludeID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid exclude_appointment_id")
			return
		}
		req.ExcludeAppointmentID = &excludeID
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.ResolveAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDate, usecase.ErrInvalidDateRange, usecase.ErrInvalidSlotDuration:
			response.BadRequest(w, err.Error())
		case usecase.ErrDateRangeTooLarge:
			response.BadRequest(w, "Date range exceeds the maximum resolvable window")
		default:
			response.InternalServerError(w, "Failed to resolve availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability resolved successfully", availability)
}
