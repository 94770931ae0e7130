package service

import (
	"time"

	"go-hospital-scheduling/internal/domain/entity"
)

// Expansion safety caps for open-ended rules. Callers can pass a tighter
// occurrence limit; these bound the walk when nothing else does.
const (
	maxExpansionDays       = 3 * 366
	defaultOccurrenceLimit = 1000
)

// ExpandOccurrences enumerates the concrete dates on which a recurrence rule
// fires, starting at start (inclusive) and bounded by rangeEnd when non-nil.
//
// The rule's own terminating conditions are honored: generation stops at the
// rule's end date or at max occurrences, whichever is reached first. limit
// caps the result for open-ended rules; limit <= 0 applies the default cap.
func ExpandOccurrences(rule *entity.RecurrenceRule, start time.Time, rangeEnd *time.Time, limit int) []time.Time {
	if limit <= 0 {
		limit = defaultOccurrenceLimit
	}
	if rule.MaxOccurrences != nil && *rule.MaxOccurrences < limit {
		limit = *rule.MaxOccurrences
	}

	start = start.Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, maxExpansionDays)
	if rangeEnd != nil && rangeEnd.Before(end) {
		end = rangeEnd.Truncate(24 * time.Hour)
	}
	if rule.EndDate != nil && rule.EndDate.Before(end) {
		end = rule.EndDate.Truncate(24 * time.Hour)
	}

	occurrences := []time.Time{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if len(occurrences) >= limit {
			break
		}
		if ruleFiresOn(rule, start, d) {
			occurrences = append(occurrences, d)
		}
	}
	return occurrences
}

// ruleFiresOn applies the variant-specific inclusion predicate for one date.
// Every variant is an inclusion test over a daily walk, which keeps interval
// arithmetic in one place per variant.
func ruleFiresOn(rule *entity.RecurrenceRule, start, d time.Time) bool {
	switch rule.Type {
	case entity.RecurrenceDaily:
		return daysBetween(start, d)%rule.Interval == 0

	case entity.RecurrenceWeekly:
		if weeksBetween(start, d)%rule.Interval != 0 {
			return false
		}
		if len(rule.DaysOfWeek) == 0 {
			return d.Weekday() == start.Weekday()
		}
		return rule.MatchesWeekday(entity.WeekdayOf(d))

	case entity.RecurrenceMonthly:
		if monthsBetween(start, d)%rule.Interval != 0 {
			return false
		}
		if len(rule.DaysOfMonth) == 0 {
			return d.Day() == start.Day()
		}
		return rule.MatchesDayOfMonth(d.Day())

	case entity.RecurrenceYearly:
		years := d.Year() - start.Year()
		return years%rule.Interval == 0 && d.Month() == start.Month() && d.Day() == start.Day()

	case entity.RecurrenceCustom:
		if daysBetween(start, d)%rule.Interval != 0 {
			return false
		}
		return rule.MatchesWeekday(entity.WeekdayOf(d)) && rule.MatchesDayOfMonth(d.Day())
	}
	return false
}

func daysBetween(a, b time.Time) int {
	return int(b.Truncate(24*time.Hour).Sub(a.Truncate(24*time.Hour)).Hours() / 24)
}

// weeksBetween counts Sunday-anchored week boundaries between a and b.
func weeksBetween(a, b time.Time) int {
	return daysBetween(startOfWeek(a), startOfWeek(b)) / 7
}

func startOfWeek(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
