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

type ExceptionHandler struct {
	exceptionUsecase usecase.ExceptionUsecase
	validator        *validator.CustomValidator
}

func NewExceptionHandler(exceptionUsecase usecase.ExceptionUsecase, validator *validator.CustomValidator) *ExceptionHandler {
	return &ExceptionHandler{
		exceptionUsecase: exceptionUsecase,
		validator:        validator,
	}
}

func (h *ExceptionHandler) CreateException(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.CreateExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exception, err := h.exceptionUsecase.CreateException(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case isExceptionValidationError(err):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create exception")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Exception created successfully", exception)
}

func (h *ExceptionHandler) GetExceptions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	req := dto.ListExceptionsRequest{
		ExceptionType: r.URL.Query().Get("exception_type"),
		Status:        r.URL.Query().Get("status"),
		StartDate:     r.URL.Query().Get("start_date"),
		EndDate:       r.URL.Query().Get("end_date"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	exceptions, err := h.exceptionUsecase.GetExceptions(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrInvalidDateRange:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get exceptions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exceptions retrieved successfully", exceptions)
}

func (h *ExceptionHandler) DeleteException(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	exceptionID, err := uuid.Parse(vars["exceptionId"])
	if err != nil {
		response.BadRequest(w, "Invalid exception ID")
		return
	}

	err = h.exceptionUsecase.DeleteException(r.Context(), doctorID, exceptionID)
	if err != nil {
		switch err {
		case usecase.ErrExceptionNotFound:
			response.NotFound(w, "Exception not found")
		case usecase.ErrExceptionNotOwned:
			response.Forbidden(w, "Exception does not belong to this doctor")
		default:
			response.InternalServerError(w, "Failed to delete exception")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exception deleted successfully", nil)
}

// isExceptionValidationError reports whether the error is a structural problem
// in the submitted exception rather than a server fault.
func isExceptionValidationError(err error) bool {
	for _, candidate := range []error{
		converter.ErrInvalidTimeFormat,
		converter.ErrInvalidDateFormat,
		entity.ErrExceptionDateOrder,
		entity.ErrExceptionTimeOrder,
		entity.ErrInvalidException,
		entity.ErrInvalidRecurrenceType,
		entity.ErrInvalidRecurrenceInterval,
		entity.ErrInvalidDayOfMonth,
		entity.ErrInvalidWeekday,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
