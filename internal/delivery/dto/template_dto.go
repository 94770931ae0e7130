package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RecurrenceRuleRequest struct {
	Type           string `json:"type" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY CUSTOM"`
	Interval       int    `json:"interval" validate:"min=0"`
	DaysOfWeek     []int  `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
	DaysOfMonth    []int  `json:"days_of_month" validate:"omitempty,dive,min=1,max=31"`
	EndDate        string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	MaxOccurrences int    `json:"max_occurrences" validate:"min=0"`
}

type CreateTemplateRequest struct {
	Name           string                 `json:"name" validate:"required,max=100"`
	Description    string                 `json:"description" validate:"max=500"`
	WorkingDays    []WorkingDayRequest    `json:"working_days" validate:"required,min=1,max=7,dive"`
	RecurrenceRule *RecurrenceRuleRequest `json:"recurrence_rule,omitempty"`
	IsDefault      bool                   `json:"is_default"`
}

type ApplyTemplateRequest struct {
	TemplateID uuid.UUID `json:"template_id" validate:"required"`
	StartDate  string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string    `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type TemplateResponse struct {
	ID          uuid.UUID            `json:"id"`
	DoctorID    uuid.UUID            `json:"doctor_id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	WorkingDays []WorkingDayResponse `json:"working_days"`
	IsDefault   bool                 `json:"is_default"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Total     int                `json:"total"`
}

type ApplyTemplateResponse struct {
	TemplateID   uuid.UUID            `json:"template_id"`
	WorkingDays  []WorkingDayResponse `json:"working_days"`
	CreatedCount int                  `json:"created_count"`
	UpdatedCount int                  `json:"updated_count"`
	NewConflicts int                  `json:"new_conflicts"`
}
