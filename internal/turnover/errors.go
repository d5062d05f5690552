package turnover

import (
	"errors"
	"fmt"
)

// Rejections. Returned inside Decision.Reason, never as a hard error.
var (
	// ErrAlreadyBooked a booking of the same ceremony kind already exists for the hall-day
	ErrAlreadyBooked = errors.New("turnover: slot type already booked for this hall and date")

	// ErrTomobikiRestriction funeral requested on a tomobiki day
	ErrTomobikiRestriction = errors.New("turnover: funerals are not held on tomobiki")

	// ErrTurnoverForbidden the facility forbids a same-day wake after this funeral
	ErrTurnoverForbidden = errors.New("turnover: same-day wake is forbidden after this funeral")

	// ErrTurnoverTooSoon the wake starts earlier than the computed minimum
	ErrTurnoverTooSoon = errors.New("turnover: wake is too soon after the funeral")

	// ErrNoCapacityConfigured no daily capacity record exists for the hall-day
	ErrNoCapacityConfigured = errors.New("turnover: no capacity configured")

	// ErrCapacityExceeded the hall-day is already full
	ErrCapacityExceeded = errors.New("turnover: capacity exceeded")
)

// Configuration errors. Returned as hard errors.
var (
	// ErrMalformedConfig the facility configuration cannot be evaluated
	ErrMalformedConfig = errors.New("turnover: malformed facility configuration")

	// ErrDuplicateRule two rules share the same funeral time
	ErrDuplicateRule = errors.New("turnover: duplicate rule for funeral time")

	// ErrInvalidTime a configured time is not a valid HH:MM value
	ErrInvalidTime = errors.New("turnover: invalid time in configuration")
)

// TooSoonError reports the earliest admissible wake start.
// It unwraps to ErrTurnoverTooSoon.
type TooSoonError struct {
	MinWakeMinutes int // may exceed one day when the interval crosses midnight
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("%s: earliest %s", ErrTurnoverTooSoon.Error(), FormatMinutes(e.MinWakeMinutes))
}

func (e *TooSoonError) Unwrap() error {
	return ErrTurnoverTooSoon
}

// MinWakeTime returns the earliest wake start as HH:MM
func (e *TooSoonError) MinWakeTime() string {
	return FormatMinutes(e.MinWakeMinutes)
}

// FormatMinutes renders a minute count as HH:MM without wrapping at midnight,
// so 26:00 stays 26:00 and the caller can see the minimum falls on the next day.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Rejection codes used in metrics labels and API responses
const (
	CodeAllowed          = "allowed"
	CodeAlreadyBooked    = "already_booked"
	CodeTomobiki         = "tomobiki"
	CodeForbidden        = "turnover_forbidden"
	CodeTooSoon          = "turnover_too_soon"
	CodeNoCapacity       = "no_capacity"
	CodeCapacityExceeded = "capacity_exceeded"
)

var rejectionCodes = []struct {
	err  error
	code string
}{
	{ErrAlreadyBooked, CodeAlreadyBooked},
	{ErrTomobikiRestriction, CodeTomobiki},
	{ErrTurnoverForbidden, CodeForbidden},
	{ErrTurnoverTooSoon, CodeTooSoon},
	{ErrNoCapacityConfigured, CodeNoCapacity},
	{ErrCapacityExceeded, CodeCapacityExceeded},
}

// RejectionCode returns the code of a rejection error, empty for any other error
func RejectionCode(err error) string {
	if err == nil {
		return ""
	}
	for _, rc := range rejectionCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return ""
}

// IsRejection reports whether err is a booking rejection rather than a failure
func IsRejection(err error) bool {
	return RejectionCode(err) != ""
}

// Code returns the metrics label of a decision
func (d Decision) Code() string {
	if d.Allowed {
		return CodeAllowed
	}
	if code := RejectionCode(d.Reason); code != "" {
		return code
	}
	return "rejected"
}
