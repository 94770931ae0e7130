package entity

import (
	"fmt"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/shopspring/decimal"
)

// SlotType distinguishes the kind of appointment a slot is intended for.
type SlotType string

const (
	SlotRegular      SlotType = "REGULAR"
	SlotEmergency    SlotType = "EMERGENCY"
	SlotFollowUp     SlotType = "FOLLOW_UP"
	SlotConsultation SlotType = "CONSULTATION"
)

// Unavailability reasons attached to generated slots.
const (
	UnavailableReasonLeave   = "on leave"
	UnavailableReasonBooked  = "already booked"
	UnavailableReasonOutside = "outside working hours"
	UnavailableReasonBreak   = "during break"
)

// TimeSlot is a discrete bookable interval derived from working-day config.
// Slots are recomputed per query and never persisted; appointments remain the
// system of record for bookings.
type TimeSlot struct {
	ID                string            `json:"id"`
	Date              time.Time         `json:"date"`
	StartTime         timestr.TimeOfDay `json:"start_time"`
	EndTime           timestr.TimeOfDay `json:"end_time"`
	Duration          int               `json:"duration"`
	IsAvailable       bool              `json:"is_available"`
	UnavailableReason string            `json:"unavailable_reason,omitempty"`
	LeaveType         ExceptionType     `json:"leave_type,omitempty"`
	MaxBookings       int               `json:"max_bookings"`
	CurrentBookings   int               `json:"current_bookings"`
	Type              SlotType          `json:"type"`
	Price             *decimal.Decimal  `json:"price,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}

// SlotID derives the deterministic slot identifier from date and start time.
// Identity must be stable across re-runs so conflict records can reference
// slots without positional indices.
func SlotID(date time.Time, start timestr.TimeOfDay) string {
	return fmt.Sprintf("%s-%s", date.Format("2006-01-02"), start.String())
}

// MarkUnavailable records the first failing availability check. Later checks
// never overwrite an earlier reason.
func (s *TimeSlot) MarkUnavailable(reason string) {
	if !s.IsAvailable {
		return
	}
	s.IsAvailable = false
	s.UnavailableReason = reason
}

// Overlaps reports whether two slots' half-open windows intersect on the
// same date.
func (s *TimeSlot) Overlaps(other *TimeSlot) bool {
	if !s.Date.Equal(other.Date) {
		return false
	}
	return timestr.Overlaps(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}
