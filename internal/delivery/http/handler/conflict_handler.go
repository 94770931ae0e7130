package handler

import (
	"encoding/json"
	"net/http"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ConflictHandler struct {
	conflictUsecase usecase.ConflictUsecase
	validator       *validator.CustomValidator
}

func NewConflictHandler(conflictUsecase usecase.ConflictUsecase, validator *validator.CustomValidator) *ConflictHandler {
	return &ConflictHandler{
		conflictUsecase: conflictUsecase,
		validator:       validator,
	}
}

func (h *ConflictHandler) ScanConflicts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.ScanConflictsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.conflictUsecase.ScanConflicts(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDate, usecase.ErrInvalidDateRange, usecase.ErrDateRangeTooLarge:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to scan for conflicts")
		}
		return
	}

	response.Success(w, http.StatusOK, "Conflict scan completed", result)
}

func (h *ConflictHandler) ListConflicts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	req := dto.ListConflictsRequest{
		Status:       r.URL.Query().Get("status"),
		ConflictType: r.URL.Query().Get("conflict_type"),
		Severity:     r.URL.Query().Get("severity"),
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	conflicts, err := h.conflictUsecase.ListConflicts(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrInvalidDateRange:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to list conflicts")
		}
		return
	}

	response.Success(w, http.StatusOK, "Conflicts retrieved successfully", conflicts)
}

func (h *ConflictHandler) AutoFixConflict(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conflictID, err := uuid.Parse(vars["conflictId"])
	if err != nil {
		response.BadRequest(w, "Invalid conflict ID")
		return
	}

	conflict, err := h.conflictUsecase.AutoFixConflict(r.Context(), conflictID)
	if err != nil {
		switch err {
		case usecase.ErrConflictNotFound:
			response.NotFound(w, "Conflict not found")
		case entity.ErrConflictAlreadyTerminal:
			response.Conflict(w, "Conflict is already resolved or ignored")
		case entity.ErrConflictNotAutoFixable:
			response.Conflict(w, "Conflict requires manual resolution")
		default:
			response.InternalServerError(w, "Failed to auto-fix conflict")
		}
		return
	}

	response.Success(w, http.StatusOK, "Conflict auto-fixed successfully", conflict)
}

func (h *ConflictHandler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conflictID, err := uuid.Parse(vars["conflictId"])
	if err != nil {
		response.BadRequest(w, "Invalid conflict ID")
		return
	}

	var req dto.ResolveConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	conflict, err := h.conflictUsecase.ResolveConflict(r.Context(), conflictID, &req)
	if err != nil {
		switch err {
		case usecase.ErrConflictNotFound:
			response.NotFound(w, "Conflict not found")
		case entity.ErrConflictAlreadyTerminal:
			response.Conflict(w, "Conflict is already resolved or ignored")
		case entity.ErrResolutionMethodRequired:
			response.BadRequest(w, "A valid resolution method is required")
		default:
			response.InternalServerError(w, "Failed to resolve conflict")
		}
		return
	}

	response.Success(w, http.StatusOK, "Conflict resolved successfully", conflict)
}

func (h *ConflictHandler) IgnoreConflict(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conflictID, err := uuid.Parse(vars["conflictId"])
	if err != nil {
		response.BadRequest(w, "Invalid conflict ID")
		return
	}

	var req dto.IgnoreConflictRequest
	if r.Body != nil {
		// The note is optional; an empty body means "ignore without comment".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	conflict, err := h.conflictUsecase.IgnoreConflict(r.Context(), conflictID, &req)
	if err != nil {
		switch err {
		case usecase.ErrConflictNotFound:
			response.NotFound(w, "Conflict not found")
		case entity.ErrConflictAlreadyTerminal:
			response.Conflict(w, "Conflict is already resolved or ignored")
		default:
			response.InternalServerError(w, "Failed to ignore conflict")
		}
		return
	}

	response.Success(w, http.StatusOK, "Conflict ignored", conflict)
}
