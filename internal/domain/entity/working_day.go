package entity

import (
	"errors"
	"time"

	"go-hospital-scheduling/pkg/timestr"

	"github.com/google/uuid"
)

// Weekday mirrors time.Weekday values (Sunday = 0) so conversions are direct.
type Weekday int

const (
	WeekdaySunday Weekday = iota
	WeekdayMonday
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (w Weekday) String() string {
	if w < WeekdaySunday || w > WeekdaySaturday {
		return "Unknown"
	}
	return weekdayNames[w]
}

// Valid reports whether w is a real weekday.
func (w Weekday) Valid() bool {
	return w >= WeekdaySunday && w <= WeekdaySaturday
}

// WeekdayOf converts a calendar date to its Weekday.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

var (
	ErrWorkingHoursInverted = errors.New("working day start time must be before end time")
	ErrBreakInverted        = errors.New("break start must be before break end")
	ErrBreakOutsideHours    = errors.New("break window must lie within working hours")
	ErrInvalidWeekday       = errors.New("invalid day of week")
	ErrInvalidDuration      = errors.New("appointment duration must be between 15 and 480 minutes")
	ErrNegativeBuffer       = errors.New("buffer time must not be negative")
	ErrEffectiveRangeOrder  = errors.New("effective_from must not be after effective_until")
)

// Appointment duration bounds in minutes.
const (
	MinAppointmentDuration = 15
	MaxAppointmentDuration = 480
)

// WorkingDay is a doctor's configured availability for one weekday, optionally
// scoped to an effective date range so future schedules can be staged.
type WorkingDay struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID            uuid.UUID          `gorm:"type:uuid;not null;index:idx_working_days_doctor_weekday" json:"doctor_id"`
	DayOfWeek           Weekday            `gorm:"not null;index:idx_working_days_doctor_weekday" json:"day_of_week"`
	IsWorking           bool               `gorm:"not null;default:true" json:"is_working"`
	StartTime           timestr.TimeOfDay  `gorm:"type:time;not null" json:"start_time"`
	EndTime             timestr.TimeOfDay  `gorm:"type:time;not null" json:"end_time"`
	BreakStart          *timestr.TimeOfDay `gorm:"type:time" json:"break_start,omitempty"`
	BreakEnd            *timestr.TimeOfDay `gorm:"type:time" json:"break_end,omitempty"`
	MaxAppointments     int                `gorm:"not null;default:0" json:"max_appointments"`
	AppointmentDuration int                `gorm:"not null" json:"appointment_duration"`
	BufferTime          int                `gorm:"not null;default:0" json:"buffer_time"`
	Timezone            string             `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	RecurrenceType      RecurrenceType     `gorm:"type:varchar(20);not null;default:'WEEKLY'" json:"recurrence_type"`
	EffectiveFrom       *time.Time         `gorm:"type:date" json:"effective_from,omitempty"`
	EffectiveUntil      *time.Time         `gorm:"type:date" json:"effective_until,omitempty"`
	IsTemplate          bool               `gorm:"not null;default:false" json:"is_template"`
	CreatedAt           time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkingDay) TableName() string {
	return "working_days"
}

// Validate checks the structural invariants of a working day configuration.
func (wd *WorkingDay) Validate() error {
	if !wd.DayOfWeek.Valid() {
		return ErrInvalidWeekday
	}
	if !wd.IsWorking {
		return nil
	}
	if !wd.StartTime.Before(wd.EndTime) {
		return ErrWorkingHoursInverted
	}
	if wd.AppointmentDuration < MinAppointmentDuration || wd.AppointmentDuration > MaxAppointmentDuration {
		return ErrInvalidDuration
	}
	if wd.BufferTime < 0 {
		return ErrNegativeBuffer
	}
	if wd.HasBreak() {
		if !wd.BreakStart.Before(*wd.BreakEnd) {
			return ErrBreakInverted
		}
		if wd.BreakStart.Before(wd.StartTime) || wd.BreakEnd.After(wd.EndTime) {
			return ErrBreakOutsideHours
		}
	}
	if wd.EffectiveFrom != nil && wd.EffectiveUntil != nil && wd.EffectiveFrom.After(*wd.EffectiveUntil) {
		return ErrEffectiveRangeOrder
	}
	return nil
}

// HasBreak reports whether a non-degenerate break window is configured.
// A break with equal start and end is treated as no break at all.
func (wd *WorkingDay) HasBreak() bool {
	return wd.BreakStart != nil && wd.BreakEnd != nil && !wd.BreakStart.Equal(*wd.BreakEnd)
}

// EffectiveOn reports whether the working day applies on the given date.
func (wd *WorkingDay) EffectiveOn(date time.Time) bool {
	if wd.DayOfWeek != WeekdayOf(date) {
		return false
	}
	day := date.Truncate(24 * time.Hour)
	if wd.EffectiveFrom != nil && day.Before(wd.EffectiveFrom.Truncate(24*time.Hour)) {
		return false
	}
	if wd.EffectiveUntil != nil && day.After(wd.EffectiveUntil.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// EffectiveRangeDays returns the width of the effective range in days.
// Open-ended ranges count as unbounded so narrower ranges always win
// specificity comparisons.
func (wd *WorkingDay) EffectiveRangeDays() int {
	if wd.EffectiveFrom == nil || wd.EffectiveUntil == nil {
		return int(^uint(0) >> 1)
	}
	return int(wd.EffectiveUntil.Sub(*wd.EffectiveFrom).Hours()/24) + 1
}

// WorkingMinutes returns the length of the working window in minutes,
// ignoring the break.
func (wd *WorkingDay) WorkingMinutes() int {
	if !wd.IsWorking {
		return 0
	}
	return wd.EndTime.Minutes() - wd.StartTime.Minutes()
}
