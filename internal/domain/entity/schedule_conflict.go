package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// ConflictType classifies a detected scheduling inconsistency.
type ConflictType string

const (
	ConflictDoubleBooking      ConflictType = "DOUBLE_BOOKING"
	ConflictOverlap            ConflictType = "OVERLAP"
	ConflictExceptionViolation ConflictType = "EXCEPTION_VIOLATION"
	ConflictWorkingHours       ConflictType = "WORKING_HOURS"
	ConflictBreakViolation     ConflictType = "BREAK_VIOLATION"
	ConflictCalendarSync       ConflictType = "CALENDAR_SYNC"
	ConflictLeave              ConflictType = "LEAVE_CONFLICT"
)

// ConflictSeverity ranks how urgent a conflict is.
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "LOW"
	SeverityMedium   ConflictSeverity = "MEDIUM"
	SeverityHigh     ConflictSeverity = "HIGH"
	SeverityCritical ConflictSeverity = "CRITICAL"
)

// ConflictStatus is the lifecycle state of a conflict record.
// PENDING is the only non-terminal state; a re-scan that finds the same
// condition again creates a new record rather than reopening a terminal one.
type ConflictStatus string

const (
	ConflictStatusPending  ConflictStatus = "PENDING"
	ConflictStatusResolved ConflictStatus = "RESOLVED"
	ConflictStatusIgnored  ConflictStatus = "IGNORED"
)

// ResolutionMethod records how a conflict was resolved.
type ResolutionMethod string

const (
	ResolutionAutoReschedule ResolutionMethod = "AUTO_RESCHEDULE"
	ResolutionManual         ResolutionMethod = "MANUAL_RESOLUTION"
	ResolutionCancel         ResolutionMethod = "CANCEL_APPOINTMENT"
)

// Valid reports whether m is a known resolution method.
func (m ResolutionMethod) Valid() bool {
	switch m {
	case ResolutionAutoReschedule, ResolutionManual, ResolutionCancel:
		return true
	}
	return false
}

var (
	ErrConflictAlreadyTerminal  = errors.New("conflict is already resolved or ignored")
	ErrConflictNotAutoFixable   = errors.New("conflict requires manual resolution")
	ErrResolutionMethodRequired = errors.New("manual resolution requires a resolution method")
)

// StringList is a jsonb-backed list of slot/appointment identifiers.
type StringList []string

// Value stores the list as JSONB.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan loads the list from a JSONB column.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal string list value: %v", value)
	}
	return json.Unmarshal(bytes, l)
}

// ScheduleConflict is one detected inconsistency between schedule
// configuration, exceptions and booked appointments. Records are never
// deleted; resolution and dismissal are status transitions so the audit
// trail stays intact.
type ScheduleConflict struct {
	ID                       uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID                 uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ConflictType             ConflictType       `gorm:"type:varchar(30);not null;index" json:"conflict_type"`
	ConflictKey              string             `gorm:"type:varchar(255);not null;index" json:"conflict_key"`
	AppointmentID            *uuid.UUID         `gorm:"type:uuid" json:"appointment_id,omitempty"`
	ConflictingAppointmentID *uuid.UUID         `gorm:"type:uuid" json:"conflicting_appointment_id,omitempty"`
	ConflictDate             time.Time          `gorm:"type:date;not null;index" json:"conflict_date"`
	ConflictStart            *timestr.TimeOfDay `gorm:"type:time" json:"conflict_start,omitempty"`
	ConflictEnd              *timestr.TimeOfDay `gorm:"type:time" json:"conflict_end,omitempty"`
	Severity                 ConflictSeverity   `gorm:"type:varchar(10);not null" json:"severity"`
	Status                   ConflictStatus     `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	AutoFixable              bool               `gorm:"not null;default:false" json:"auto_fixable"`
	AffectedSlotIDs          StringList         `gorm:"type:jsonb" json:"affected_slot_ids,omitempty"`
	Description              string             `gorm:"type:varchar(500)" json:"description,omitempty"`
	SuggestedFix             string             `gorm:"type:varchar(255)" json:"suggested_fix,omitempty"`
	ResolutionMethod         *ResolutionMethod  `gorm:"type:varchar(30)" json:"resolution_method,omitempty"`
	ResolutionNotes          string             `gorm:"type:varchar(500)" json:"resolution_notes,omitempty"`
	ResolvedAt               *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt                time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleConflict) TableName() string {
	return "schedule_conflicts"
}

// IsTerminal reports whether the conflict has left the PENDING state.
func (c *ScheduleConflict) IsTerminal() bool {
	return c.Status == ConflictStatusResolved || c.Status == ConflictStatusIgnored
}

// Resolve transitions the conflict to RESOLVED with the given method.
// Terminal conflicts are never reopened or re-resolved.
func (c *ScheduleConflict) Resolve(method ResolutionMethod, notes string, now time.Time) error {
	if c.IsTerminal() {
		return ErrConflictAlreadyTerminal
	}
	c.Status = ConflictStatusResolved
	c.ResolutionMethod = &method
	c.ResolutionNotes = notes
	c.ResolvedAt = &now
	return nil
}

// Ignore transitions the conflict to IGNORED.
func (c *ScheduleConflict) Ignore(notes string, now time.Time) error {
	if c.IsTerminal() {
		return ErrConflictAlreadyTerminal
	}
	c.Status = ConflictStatusIgnored
	c.ResolutionNotes = notes
	c.ResolvedAt = &now
	return nil
}
