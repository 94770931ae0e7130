package service

import (
	"time"

	"go-hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

// TemplateEngine expands schedule templates into concrete working-day rows.
// Planning is pure; the usecase persists the plan inside one transaction.
type TemplateEngine struct{}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{}
}

// PlanApplication computes the working-day upsert set for applying template
// over [start, end]. The upsert is keyed by (doctor, weekday): an existing
// row for a configured weekday is updated in place, never duplicated, so
// applying the same template twice yields an identical row set.
//
// A WEEKLY rule with interval 1 maps each weekday config directly onto one
// persistent row; it already is the recurring weekly shape. Any other rule is
// expanded into concrete occurrence dates first, and only weekdays that
// actually occur are materialized, with their effective range narrowed to
// the occurrence span.
func (t *TemplateEngine) PlanApplication(
	template *entity.ScheduleTemplate,
	existing []entity.WorkingDay,
	start time.Time,
	end *time.Time,
) []entity.WorkingDay {
	rule := template.RecurrenceRule
	start = start.Truncate(24 * time.Hour)

	type span struct{ first, last time.Time }
	active := map[entity.Weekday]span{}

	if rule.Type == entity.RecurrenceWeekly && rule.Interval == 1 {
		for _, twd := range template.WorkingDays {
			s := span{first: start}
			if end != nil {
				s.last = end.Truncate(24 * time.Hour)
			}
			active[twd.DayOfWeek] = s
		}
	} else {
		for _, date := range ExpandOccurrences(&rule, start, end, 0) {
			weekday := entity.WeekdayOf(date)
			s, seen := active[weekday]
			if !seen {
				s = span{first: date, last: date}
			} else {
				s.last = date
			}
			active[weekday] = s
		}
	}

	existingByWeekday := map[entity.Weekday]*entity.WorkingDay{}
	for i := range existing {
		wd := &existing[i]
		if _, taken := existingByWeekday[wd.DayOfWeek]; !taken {
			existingByWeekday[wd.DayOfWeek] = wd
		}
	}

	plan := []entity.WorkingDay{}
	for _, twd := range template.WorkingDays {
		s, ok := active[twd.DayOfWeek]
		if !ok {
			continue
		}

		day := twd.AsWorkingDay(template.DoctorID)
		day.RecurrenceType = rule.Type
		day.EffectiveFrom = timePtr(s.first)
		if !s.last.IsZero() {
			day.EffectiveUntil = timePtr(s.last)
		}

		if current := existingByWeekday[twd.DayOfWeek]; current != nil {
			// Update in place: keep identity so repeated applies are no-ops.
			day.ID = current.ID
			day.CreatedAt = current.CreatedAt
		} else {
			day.ID = uuid.New()
		}
		plan = append(plan, day)
	}
	return plan
}

func timePtr(t time.Time) *time.Time {
	return &t
}
