package domain

import "errors"

// ErrInvalidBooking is returned by Booking.Validate
var ErrInvalidBooking = errors.New("invalid booking")
