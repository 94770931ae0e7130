package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateExceptionRequest struct {
	ExceptionType       string                 `json:"exception_type" validate:"required,oneof=HOLIDAY VACATION SICK_LEAVE EMERGENCY CUSTOM"`
	Status              string                 `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	StartDate           string                 `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate             string                 `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsAllDay            *bool                  `json:"is_all_day,omitempty"`
	StartTime           string                 `json:"start_time" validate:"omitempty,timeofday"`
	EndTime             string                 `json:"end_time" validate:"omitempty,timeofday"`
	IsRecurring         bool                   `json:"is_recurring"`
	RecurrenceRule      *RecurrenceRuleRequest `json:"recurrence_rule,omitempty"`
	AffectsAppointments *bool                  `json:"affects_appointments,omitempty"`
	Reason              string                 `json:"reason" validate:"max=255"`
}

type ListExceptionsRequest struct {
	ExceptionType string `json:"exception_type" validate:"omitempty,oneof=HOLIDAY VACATION SICK_LEAVE EMERGENCY CUSTOM"`
	Status        string `json:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	StartDate     string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type ExceptionResponse struct {
	ID                  uuid.UUID  `json:"id"`
	DoctorID            uuid.UUID  `json:"doctor_id"`
	ExceptionType       string     `json:"exception_type"`
	Status              string     `json:"status"`
	StartDate           string     `json:"start_date"`
	EndDate             string     `json:"end_date"`
	IsAllDay            bool       `json:"is_all_day"`
	StartTime           string     `json:"start_time,omitempty"`
	EndTime             string     `json:"end_time,omitempty"`
	IsRecurring         bool       `json:"is_recurring"`
	AffectsAppointments bool       `json:"affects_appointments"`
	Reason              string     `json:"reason,omitempty"`
	IntegrationID       *uuid.UUID `json:"integration_id,omitempty"`
	NewConflicts        int        `json:"new_conflicts,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
	Total      int                 `json:"total"`
}
