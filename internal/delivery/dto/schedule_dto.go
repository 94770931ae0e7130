package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type WorkingDayRequest struct {
	DayOfWeek           int    `json:"day_of_week" validate:"min=0,max=6"`
	IsWorking           bool   `json:"is_working"`
	StartTime           string `json:"start_time" validate:"required_if=IsWorking true,omitempty,timeofday"`
	EndTime             string `json:"end_time" validate:"required_if=IsWorking true,omitempty,timeofday"`
	BreakStart          string `json:"break_start" validate:"omitempty,timeofday"`
	BreakEnd            string `json:"break_end" validate:"omitempty,timeofday"`
	MaxAppointments     int    `json:"max_appointments" validate:"min=0"`
	AppointmentDuration int    `json:"appointment_duration" validate:"required_if=IsWorking true,omitempty,min=15,max=480"`
	BufferTime          int    `json:"buffer_time" validate:"min=0"`
	Timezone            string `json:"timezone"`
	RecurrenceType      string `json:"recurrence_type" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY CUSTOM"`
	EffectiveFrom       string `json:"effective_from" validate:"omitempty,datetime=2006-01-02"`
	EffectiveUntil      string `json:"effective_until" validate:"omitempty,datetime=2006-01-02"`
}

type ReplaceScheduleRequest struct {
	WorkingDays []WorkingDayRequest `json:"working_days" validate:"required,min=1,max=7,dive"`
}

// Response DTOs

type WorkingDayResponse struct {
	ID                  uuid.UUID `json:"id"`
	DayOfWeek           int       `json:"day_of_week"`
	DayName             string    `json:"day_name"`
	IsWorking           bool      `json:"is_working"`
	StartTime           string    `json:"start_time,omitempty"`
	EndTime             string    `json:"end_time,omitempty"`
	BreakStart          string    `json:"break_start,omitempty"`
	BreakEnd            string    `json:"break_end,omitempty"`
	MaxAppointments     int       `json:"max_appointments"`
	AppointmentDuration int       `json:"appointment_duration"`
	BufferTime          int       `json:"buffer_time"`
	Timezone            string    `json:"timezone"`
	RecurrenceType      string    `json:"recurrence_type"`
	EffectiveFrom       string    `json:"effective_from,omitempty"`
	EffectiveUntil      string    `json:"effective_until,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ScheduleResponse struct {
	DoctorID    uuid.UUID            `json:"doctor_id"`
	WorkingDays []WorkingDayResponse `json:"working_days"`
	Total       int                  `json:"total"`
}
