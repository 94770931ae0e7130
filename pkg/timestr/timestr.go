package timestr

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrInvalidTimeOfDay is returned when a string is not a valid "HH:MM" time
var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM (24h)")

// TimeOfDay is a wall-clock time within a day, stored as "HH:MM" (24h).
// Dates and timezones are carried separately; a TimeOfDay never embeds an offset.
type TimeOfDay struct {
	hour   int
	minute int
}

// Parse parses an "HH:MM" string into a TimeOfDay.
func Parse(s string) (TimeOfDay, error) {
	var h, m int
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{hour: h, minute: m}, nil
}

// MustParse parses an "HH:MM" string and panics on failure. For tests and constants.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromMinutes builds a TimeOfDay from minutes since midnight.
// Values outside [0, 1439] are clamped into the day.
func FromMinutes(m int) TimeOfDay {
	if m < 0 {
		m = 0
	}
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return TimeOfDay{hour: m / 60, minute: m % 60}
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.hour*60 + t.minute
}

// String returns the canonical "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// IsZero reports whether t is the zero value ("00:00").
func (t TimeOfDay) IsZero() bool {
	return t.hour == 0 && t.minute == 0
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// Equal reports whether t and other are the same minute.
func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Minutes() == other.Minutes()
}

// AddMinutes returns t shifted forward by m minutes. The result saturates at
// the end of the day rather than wrapping, so callers can detect overflow by
// comparing against the expected minute count.
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return FromMinutes(t.Minutes() + m)
}

// MarshalJSON encodes t as its "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes an "HH:MM" JSON string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, string(data))
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer so TimeOfDay maps onto a TIME column.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner. Postgres TIME columns come back as
// "HH:MM:SS"; the seconds component is dropped.
func (t *TimeOfDay) Scan(value interface{}) error {
	if value == nil {
		*t = TimeOfDay{}
		return nil
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, value)
	}
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
