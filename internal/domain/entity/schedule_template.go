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

var (
	ErrTemplateEmpty        = errors.New("template must configure at least one weekday")
	ErrTemplateDuplicateDay = errors.New("template configures the same weekday twice")
)

// TemplateWorkingDay is one weekday configuration inside a schedule template.
// It mirrors WorkingDay minus identity and effective-range fields, which are
// assigned when the template is applied.
type TemplateWorkingDay struct {
	DayOfWeek           Weekday            `json:"day_of_week"`
	IsWorking           bool               `json:"is_working"`
	StartTime           timestr.TimeOfDay  `json:"start_time"`
	EndTime             timestr.TimeOfDay  `json:"end_time"`
	BreakStart          *timestr.TimeOfDay `json:"break_start,omitempty"`
	BreakEnd            *timestr.TimeOfDay `json:"break_end,omitempty"`
	MaxAppointments     int                `json:"max_appointments"`
	AppointmentDuration int                `json:"appointment_duration"`
	BufferTime          int                `json:"buffer_time"`
	Timezone            string             `json:"timezone"`
}

// TemplateWorkingDays is the jsonb-backed ordered list of weekday configs.
type TemplateWorkingDays []TemplateWorkingDay

// Value stores the weekday configs as JSONB.
func (t TemplateWorkingDays) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan loads the weekday configs from a JSONB column.
func (t *TemplateWorkingDays) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal template working days value: %v", value)
	}
	return json.Unmarshal(bytes, t)
}

// ScheduleTemplate is a named, reusable weekly or monthly schedule pattern.
// Applying it materializes WorkingDay rows for a date range. At most one
// template per doctor may be the default; the usecase enforces that.
type ScheduleTemplate struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID       uuid.UUID           `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Name           string              `gorm:"type:varchar(100);not null" json:"name"`
	Description    string              `gorm:"type:varchar(500)" json:"description,omitempty"`
	WorkingDays    TemplateWorkingDays `gorm:"type:jsonb;not null" json:"working_days"`
	RecurrenceRule RecurrenceRule      `gorm:"type:jsonb;not null" json:"recurrence_rule"`
	IsDefault      bool                `gorm:"not null;default:false" json:"is_default"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleTemplate) TableName() string {
	return "schedule_templates"
}

// Validate checks the template's weekday configs and recurrence rule.
func (t *ScheduleTemplate) Validate() error {
	if len(t.WorkingDays) == 0 {
		return ErrTemplateEmpty
	}
	seen := map[Weekday]bool{}
	for i := range t.WorkingDays {
		twd := &t.WorkingDays[i]
		if seen[twd.DayOfWeek] {
			return ErrTemplateDuplicateDay
		}
		seen[twd.DayOfWeek] = true
		wd := twd.AsWorkingDay(uuid.Nil)
		if err := wd.Validate(); err != nil {
			return err
		}
	}
	return t.RecurrenceRule.Validate()
}

// AsWorkingDay converts the template config into a WorkingDay for the doctor.
// Identity and effective range are left for the caller to assign.
func (twd *TemplateWorkingDay) AsWorkingDay(doctorID uuid.UUID) WorkingDay {
	tz := twd.Timezone
	if tz == "" {
		tz = "UTC"
	}
	return WorkingDay{
		DoctorID:            doctorID,
		DayOfWeek:           twd.DayOfWeek,
		IsWorking:           twd.IsWorking,
		StartTime:           twd.StartTime,
		EndTime:             twd.EndTime,
		BreakStart:          twd.BreakStart,
		BreakEnd:            twd.BreakEnd,
		MaxAppointments:     twd.MaxAppointments,
		AppointmentDuration: twd.AppointmentDuration,
		BufferTime:          twd.BufferTime,
		Timezone:            tz,
	}
}
