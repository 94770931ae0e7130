package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RecurrenceType discriminates the recurrence rule variants.
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "DAILY"
	RecurrenceWeekly  RecurrenceType = "WEEKLY"
	RecurrenceMonthly RecurrenceType = "MONTHLY"
	RecurrenceYearly  RecurrenceType = "YEARLY"
	RecurrenceCustom  RecurrenceType = "CUSTOM"
)

// Valid reports whether t is a known recurrence type.
func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly, RecurrenceCustom:
		return true
	}
	return false
}

var (
	ErrInvalidRecurrenceType     = errors.New("invalid recurrence type")
	ErrInvalidRecurrenceInterval = errors.New("recurrence interval must be positive")
	ErrInvalidDayOfMonth         = errors.New("days_of_month values must be within 1-31")
)

// RecurrenceRule describes how a schedule pattern repeats. The Type field
// selects the variant; DaysOfWeek applies to WEEKLY/CUSTOM, DaysOfMonth to
// MONTHLY/CUSTOM. When both EndDate and MaxOccurrences are set, expansion
// stops at whichever is reached first.
type RecurrenceRule struct {
	Type           RecurrenceType `json:"type"`
	Interval       int            `json:"interval"`
	DaysOfWeek     []Weekday      `json:"days_of_week,omitempty"`
	DaysOfMonth    []int          `json:"days_of_month,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	MaxOccurrences *int           `json:"max_occurrences,omitempty"`
}

// Validate checks the structural invariants of a recurrence rule.
func (r *RecurrenceRule) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidRecurrenceType
	}
	if r.Interval <= 0 {
		return ErrInvalidRecurrenceInterval
	}
	for _, w := range r.DaysOfWeek {
		if !w.Valid() {
			return ErrInvalidWeekday
		}
	}
	for _, d := range r.DaysOfMonth {
		if d < 1 || d > 31 {
			return ErrInvalidDayOfMonth
		}
	}
	return nil
}

// MatchesWeekday reports whether the rule restricts weekdays and, if so,
// whether w is among them. An empty DaysOfWeek list matches every weekday.
func (r *RecurrenceRule) MatchesWeekday(w Weekday) bool {
	if len(r.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range r.DaysOfWeek {
		if d == w {
			return true
		}
	}
	return false
}

// MatchesDayOfMonth reports whether day is among DaysOfMonth; an empty list
// matches every day of month.
func (r *RecurrenceRule) MatchesDayOfMonth(day int) bool {
	if len(r.DaysOfMonth) == 0 {
		return true
	}
	for _, d := range r.DaysOfMonth {
		if d == day {
			return true
		}
	}
	return false
}

// Value stores the rule as JSONB.
func (r RecurrenceRule) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan loads the rule from a JSONB column.
func (r *RecurrenceRule) Scan(value interface{}) error {
	if value == nil {
		*r = RecurrenceRule{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal recurrence rule value: %v", value)
	}
	return json.Unmarshal(bytes, r)
}
