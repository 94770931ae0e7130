package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ScanConflictsRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type ListConflictsRequest struct {
	Status       string `json:"status" validate:"omitempty,oneof=PENDING RESOLVED IGNORED"`
	ConflictType string `json:"conflict_type" validate:"omitempty,oneof=DOUBLE_BOOKING OVERLAP EXCEPTION_VIOLATION WORKING_HOURS BREAK_VIOLATION CALENDAR_SYNC LEAVE_CONFLICT"`
	Severity     string `json:"severity" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type ResolveConflictRequest struct {
	ResolutionMethod string `json:"resolution_method" validate:"required,oneof=AUTO_RESCHEDULE MANUAL_RESOLUTION CANCEL_APPOINTMENT"`
	Notes            string `json:"notes" validate:"max=500"`
}

type IgnoreConflictRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

// Response DTOs

type ConflictResponse struct {
	ID                       uuid.UUID  `json:"id"`
	DoctorID                 uuid.UUID  `json:"doctor_id"`
	ConflictType             string     `json:"conflict_type"`
	AppointmentID            *uuid.UUID `json:"appointment_id,omitempty"`
	ConflictingAppointmentID *uuid.UUID `json:"conflicting_appointment_id,omitempty"`
	ConflictDate             string     `json:"conflict_date"`
	ConflictStart            string     `json:"conflict_start,omitempty"`
	ConflictEnd              string     `json:"conflict_end,omitempty"`
	Severity                 string     `json:"severity"`
	Status                   string     `json:"status"`
	AutoFixable              bool       `json:"auto_fixable"`
	AffectedSlotIDs          []string   `json:"affected_slot_ids,omitempty"`
	Description              string     `json:"description,omitempty"`
	SuggestedFix             string     `json:"suggested_fix,omitempty"`
	ResolutionMethod         string     `json:"resolution_method,omitempty"`
	ResolutionNotes          string     `json:"resolution_notes,omitempty"`
	ResolvedAt               *time.Time `json:"resolved_at,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

type ConflictListResponse struct {
	Conflicts []ConflictResponse `json:"conflicts"`
	Total     int                `json:"total"`
}

type ScanConflictsResponse struct {
	DoctorID     uuid.UUID          `json:"doctor_id"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	NewConflicts int                `json:"new_conflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}
