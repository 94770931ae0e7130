package service

import (
	"testing"
	"time"

	"go-hospital-scheduling/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int {
	return &n
}

func TestExpandDailyInterval(t *testing.T) {
	rule := &entity.RecurrenceRule{Type: entity.RecurrenceDaily, Interval: 3}
	start := date(2026, time.January, 1)
	end := date(2026, time.January, 10)

	got := ExpandOccurrences(rule, start, &end, 0)

	assert.Equal(t, []time.Time{
		date(2026, time.January, 1),
		date(2026, time.January, 4),
		date(2026, time.January, 7),
		date(2026, time.January, 10),
	}, got)
}

func TestExpandWeeklyEveryOtherWeek(t *testing.T) {
	// 2026-01-05 is a Monday. Weeks are Sunday-anchored, so the alternation
	// flips at each Sunday boundary, not 7 days after the start date.
	rule := &entity.RecurrenceRule{
		Type:       entity.RecurrenceWeekly,
		Interval:   2,
		DaysOfWeek: []entity.Weekday{entity.WeekdayMonday, entity.WeekdayWednesday},
	}
	start := date(2026, time.January, 5)
	end := date(2026, time.January, 25)

	got := ExpandOccurrences(rule, start, &end, 0)

	assert.Equal(t, []time.Time{
		date(2026, time.January, 5),
		date(2026, time.January, 7),
		date(2026, time.January, 19),
		date(2026, time.January, 21),
	}, got)
}

func TestExpandWeeklyWithoutDaysFallsBackToStartWeekday(t *testing.T) {
	rule := &entity.RecurrenceRule{Type: entity.RecurrenceWeekly, Interval: 1}
	start := date(2026, time.January, 6) // Tuesday
	end := date(2026, time.January, 20)

	got := ExpandOccurrences(rule, start, &end, 0)

	assert.Equal(t, []time.Time{
		date(2026, time.January, 6),
		date(2026, time.January, 13),
		date(2026, time.January, 20),
	}, got)
}

func TestExpandMonthlyByDaysOfMonth(t *testing.T) {
	rule := &entity.RecurrenceRule{
		Type:        entity.RecurrenceMonthly,
		Interval:    1,
		DaysOfMonth: []int{1, 15},
	}
	start := date(2026, time.January, 1)
	end := date(2026, time.March, 31)

	got := ExpandOccurrences(rule, start, &end, 0)

	assert.Equal(t, []time.Time{
		date(2026, time.January, 1),
		date(2026, time.January, 15),
		date(2026, time.February, 1),
		date(2026, time.February, 15),
		date(2026, time.March, 1),
		date(2026, time.March, 15),
	}, got)
}

func TestExpandStopsAtRuleEndDate(t *testing.T) {
	ruleEnd := date(2026, time.January, 3)
	rule := &entity.RecurrenceRule{Type: entity.RecurrenceDaily, Interval: 1, EndDate: &ruleEnd}
	start := date(2026, time.January, 1)
	rangeEnd := date(2026, time.January, 31)

	got := ExpandOccurrences(rule, start, &rangeEnd, 0)

	require.Len(t, got, 3)
	assert.Equal(t, date(2026, time.January, 3), got[2])
}

func TestExpandStopsAtMaxOccurrences(t *testing.T) {
	rule := &entity.RecurrenceRule{
		Type:           entity.RecurrenceDaily,
		Interval:       1,
		MaxOccurrences: intPtr(4),
	}
	start := date(2026, time.January, 1)
	rangeEnd := date(2026, time.January, 31)

	got := ExpandOccurrences(rule, start, &rangeEnd, 10)

	require.Len(t, got, 4)
	assert.Equal(t, date(2026, time.January, 4), got[3])
}

func TestExpandYearly(t *testing.T) {
	rule := &entity.RecurrenceRule{Type: entity.RecurrenceYearly, Interval: 1}
	start := date(2026, time.March, 10)
	end := date(2028, time.December, 31)

	got := ExpandOccurrences(rule, start, &end, 0)

	assert.Equal(t, []time.Time{
		date(2026, time.March, 10),
		date(2027, time.March, 10),
		date(2028, time.March, 10),
	}, got)
}

func TestExpandCustomCombinesFilters(t *testing.T) {
	// Every day, restricted to Fridays that fall within the 1st-7th.
	rule := &entity.RecurrenceRule{
		Type:        entity.RecurrenceCustom,
		Interval:    1,
		DaysOfWeek:  []entity.Weekday{entity.WeekdayFriday},
		DaysOfMonth: []int{1, 2, 3, 4, 5, 6, 7},
	}
	start := date(2026, time.January, 1)
	end := date(2026, time.March, 31)

	got := ExpandOccurrences(rule, start, &end, 0)

	assert.Equal(t, []time.Time{
		date(2026, time.January, 2),
		date(2026, time.February, 6),
		date(2026, time.March, 6),
	}, got)
}
