package entity

import (
	"errors"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// ExceptionType classifies a schedule exception.
type ExceptionType string

const (
	ExceptionHoliday   ExceptionType = "HOLIDAY"
	ExceptionVacation  ExceptionType = "VACATION"
	ExceptionSickLeave ExceptionType = "SICK_LEAVE"
	ExceptionEmergency ExceptionType = "EMERGENCY"
	ExceptionCustom    ExceptionType = "CUSTOM"
)

// Valid reports whether t is a known exception type.
func (t ExceptionType) Valid() bool {
	switch t {
	case ExceptionHoliday, ExceptionVacation, ExceptionSickLeave, ExceptionEmergency, ExceptionCustom:
		return true
	}
	return false
}

// ExceptionStatus is the approval state of a leave-style exception.
type ExceptionStatus string

const (
	ExceptionStatusPending  ExceptionStatus = "PENDING"
	ExceptionStatusApproved ExceptionStatus = "APPROVED"
	ExceptionStatusRejected ExceptionStatus = "REJECTED"
)

var (
	ErrExceptionDateOrder = errors.New("exception start date must not be after end date")
	ErrExceptionTimeOrder = errors.New("exception start time must be before end time")
	ErrInvalidException   = errors.New("invalid exception type")
)

// ScheduleException overrides normal working hours for a date range:
// holidays, leave, emergencies, or ad-hoc blocked windows. Exceptions created
// by calendar sync carry IntegrationID and ExternalEventID so repeated syncs
// upsert instead of duplicating.
type ScheduleException struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ExceptionType       ExceptionType      `gorm:"type:varchar(20);not null" json:"exception_type"`
	Status              ExceptionStatus    `gorm:"type:varchar(20);not null;default:'APPROVED';index" json:"status"`
	StartDate           time.Time          `gorm:"type:date;not null;index" json:"start_date"`
	EndDate             time.Time          `gorm:"type:date;not null;index" json:"end_date"`
	IsAllDay            bool               `gorm:"not null;default:true" json:"is_all_day"`
	StartTime           *timestr.TimeOfDay `gorm:"type:time" json:"start_time,omitempty"`
	EndTime             *timestr.TimeOfDay `gorm:"type:time" json:"end_time,omitempty"`
	IsRecurring         bool               `gorm:"not null;default:false" json:"is_recurring"`
	RecurrenceRule      *RecurrenceRule    `gorm:"type:jsonb" json:"recurrence_rule,omitempty"`
	AffectsAppointments bool               `gorm:"not null;default:true" json:"affects_appointments"`
	Reason              string             `gorm:"type:varchar(255)" json:"reason,omitempty"`
	IntegrationID       *uuid.UUID         `gorm:"type:uuid;index" json:"integration_id,omitempty"`
	ExternalEventID     *string            `gorm:"type:varchar(255);index" json:"external_event_id,omitempty"`
	CreatedAt           time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleException) TableName() string {
	return "schedule_exceptions"
}

// Validate checks the structural invariants of an exception.
func (e *ScheduleException) Validate() error {
	if !e.ExceptionType.Valid() {
		return ErrInvalidException
	}
	if e.StartDate.After(e.EndDate) {
		return ErrExceptionDateOrder
	}
	if !e.IsAllDay {
		if e.StartTime == nil || e.EndTime == nil || !e.StartTime.Before(*e.EndTime) {
			return ErrExceptionTimeOrder
		}
	}
	if e.IsRecurring && e.RecurrenceRule != nil {
		return e.RecurrenceRule.Validate()
	}
	return nil
}

// IsApproved reports whether the exception is in effect.
func (e *ScheduleException) IsApproved() bool {
	return e.Status == ExceptionStatusApproved
}

// CoversDate reports whether the exception's date range contains the date.
func (e *ScheduleException) CoversDate(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	return !day.Before(e.StartDate.Truncate(24*time.Hour)) && !day.After(e.EndDate.Truncate(24*time.Hour))
}

// BlocksWindow reports whether the exception suppresses the half-open slot
// window [start, end) on the given date. All-day exceptions block everything
// on covered dates; timed exceptions block only intersecting windows.
func (e *ScheduleException) BlocksWindow(date time.Time, start, end timestr.TimeOfDay) bool {
	if !e.CoversDate(date) {
		return false
	}
	if e.IsAllDay || e.StartTime == nil || e.EndTime == nil {
		return true
	}
	return timestr.Overlaps(start, end, *e.StartTime, *e.EndTime)
}
