package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in one calendar day.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM time of day
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-23:59 range
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString is a time of day in canonical zero-padded "HH:MM" form.
// The zero value ("") means "no time".
type TimeString string

// NewTimeString returns the time of day of t truncated to minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses s and returns its canonical form.
// "9:00" and "09:00:00" are both accepted and become "09:00".
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, ok := ToMinutes(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return FromMinutes(minutes)
}

// FromMinutes converts a minute-of-day value back to a TimeString.
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// ToMinutes converts "HH:MM" to hour*60+minute.
// It reports false for empty or unparseable input and never panics.
func ToMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 || hour < 0 || hour > 23 {
		return 0, false
	}

	if len(parts[1]) != 2 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}

	// Postgres TIME columns come back as HH:MM:SS, seconds are dropped
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 || sec < 0 || sec > 59 {
			return 0, false
		}
	}

	return hour*60 + minute, true
}

// Minutes returns the minute-of-day value, false when the value is empty or malformed.
func (t TimeString) Minutes() (int, bool) {
	return ToMinutes(string(t))
}

// IsZero reports whether no time is set.
func (t TimeString) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Validate returns an error if t is not a valid time of day.
func (t TimeString) Validate() error {
	if _, ok := t.Minutes(); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Canonical returns the zero-padded form of t, or t unchanged if it is malformed.
func (t TimeString) Canonical() TimeString {
	c, err := NewTimeStringFromString(string(t))
	if err != nil {
		return t
	}
	return c
}

// Equal compares two times by minute value, so "9:00" equals "09:00".
// Malformed values are never equal to anything.
func (t TimeString) Equal(other TimeString) bool {
	a, okA := t.Minutes()
	b, okB := other.Minutes()
	return okA && okB && a == b
}

// AddMinutes returns t shifted by n minutes. Crossing midnight is an error.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	minutes, ok := t.Minutes()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return FromMinutes(minutes + n)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	a, okA := t.Minutes()
	b, okB := other.Minutes()
	return okA && okB && a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, okA := t.Minutes()
	b, okB := other.Minutes()
	return okA && okB && a > b
}

// String implements fmt.Stringer.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer. An empty time is stored as NULL.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	c, err := NewTimeStringFromString(string(t))
	if err != nil {
		return nil, err
	}
	return string(c), nil
}

// Scan implements sql.Scanner for TIME and TEXT columns.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	c, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = c
	return nil
}
