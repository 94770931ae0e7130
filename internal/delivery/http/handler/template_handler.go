package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/repository"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TemplateHandler struct {
	templateUsecase usecase.TemplateUsecase
	validator       *validator.CustomValidator
}

func NewTemplateHandler(templateUsecase usecase.TemplateUsecase, validator *validator.CustomValidator) *TemplateHandler {
	return &TemplateHandler{
		templateUsecase: templateUsecase,
		validator:       validator,
	}
}

func (h *TemplateHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.templateUsecase.CreateTemplate(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, repository.ErrDuplicateTemplateName):
			response.Conflict(w, "A template with this name already exists")
		case errors.Is(err, entity.ErrTemplateEmpty), errors.Is(err, entity.ErrTemplateDuplicateDay):
			response.BadRequest(w, err.Error())
		case isScheduleValidationError(err):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create template")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Template created successfully", template)
}

func (h *TemplateHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	templates, err := h.templateUsecase.GetTemplates(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get templates")
		return
	}

	response.Success(w, http.StatusOK, "Templates retrieved successfully", templates)
}

func (h *TemplateHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}
	templateID, err := uuid.Parse(vars["templateId"])
	if err != nil {
		response.BadRequest(w, "Invalid template ID")
		return
	}

	err = h.templateUsecase.DeleteTemplate(r.Context(), doctorID, templateID)
	if err != nil {
		switch err {
		case usecase.ErrTemplateNotFound:
			response.NotFound(w, "Template not found")
		case usecase.ErrTemplateNotOwned:
			response.Forbidden(w, "Template does not belong to this doctor")
		default:
			response.InternalServerError(w, "Failed to delete template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template deleted successfully", nil)
}

func (h *TemplateHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.ApplyTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.templateUsecase.ApplyTemplate(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTemplateNotFound):
			response.NotFound(w, "Template not found")
		case errors.Is(err, usecase.ErrTemplateNotOwned):
			response.Forbidden(w, "Template does not belong to this doctor")
		case errors.Is(err, usecase.ErrInvalidDate), errors.Is(err, usecase.ErrInvalidDateRange):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrTemplateNoEffect):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to apply template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template applied successfully", result)
}
