package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ResolveAvailabilityRequest struct {
	StartDate            string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string     `json:"end_date" validate:"required,datetime=2006-01-02"`
	DurationMinutes      int        `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
	IncludeBreaks        bool       `json:"include_breaks"`
	IncludeLeave         bool       `json:"include_leave"`
	ExcludeAppointmentID *uuid.UUID `json:"exclude_appointment_id,omitempty"`
}

// Response DTOs

type TimeSlotResponse struct {
	ID                string `json:"id"`
	Date              string `json:"date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	Duration          int    `json:"duration"`
	IsAvailable       bool   `json:"is_available"`
	UnavailableReason string `json:"unavailable_reason,omitempty"`
	LeaveType         string `json:"leave_type,omitempty"`
	Type              string `json:"type"`
}

type DayScheduleResponse struct {
	Date           string             `json:"date"`
	DayName        string             `json:"day_name"`
	IsWorking      bool               `json:"is_working"`
	Slots          []TimeSlotResponse `json:"slots"`
	AvailableSlots int                `json:"available_slots"`
}

type AvailabilityResponse struct {
	DoctorID            uuid.UUID             `json:"doctor_id"`
	StartDate           string                `json:"start_date"`
	EndDate             string                `json:"end_date"`
	Days                []DayScheduleResponse `json:"days"`
	AvailableSlots      []TimeSlotResponse    `json:"available_slots"`
	NextAvailableSlot   *TimeSlotResponse     `json:"next_available_slot,omitempty"`
	TotalWorkingHours   float64               `json:"total_working_hours"`
	TotalAvailableSlots int                   `json:"total_available_slots"`
	Conflicts           []ConflictResponse    `json:"conflicts,omitempty"`
	SyncStale           bool                  `json:"sync_stale"`
	GeneratedAt         time.Time             `json:"generated_at"`
}
