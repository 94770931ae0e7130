package entity

import "time"

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days in the range, inclusive.
func (r DateRange) Days() int {
	return int(r.End.Truncate(24*time.Hour).Sub(r.Start.Truncate(24*time.Hour)).Hours()/24) + 1
}

// Contains reports whether the date falls inside the range.
func (r DateRange) Contains(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	return !day.Before(r.Start.Truncate(24*time.Hour)) && !day.After(r.End.Truncate(24*time.Hour))
}

// ConflictFilter is a domain-level filter for querying conflicts.
// Used by repository layer to avoid coupling with delivery DTOs.
type ConflictFilter struct {
	Status       ConflictStatus   // Empty means all statuses
	ConflictType ConflictType     // Empty means all types
	Severity     ConflictSeverity // Empty means all severities
	StartAt      string           // Format: YYYY-MM-DD
	EndAt        string           // Format: YYYY-MM-DD
}

// ExceptionFilter is a domain-level filter for querying exceptions.
type ExceptionFilter struct {
	ExceptionType ExceptionType   // Empty means all types
	Status        ExceptionStatus // Empty means all statuses
	StartAt       string          // Format: YYYY-MM-DD
	EndAt         string          // Format: YYYY-MM-DD
}
