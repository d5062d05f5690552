package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// SlotType is the ceremony kind a hall is booked for
type SlotType string

const (
	SlotFuneral SlotType = "葬儀"
	SlotWake    SlotType = "通夜"
)

// IsValid reports whether s is one of the known ceremony kinds
func (s SlotType) IsValid() bool {
	return s == SlotFuneral || s == SlotWake
}

// Opposite returns the other ceremony kind of the same hall-day
func (s SlotType) Opposite() SlotType {
	if s == SlotFuneral {
		return SlotWake
	}
	return SlotFuneral
}

// BookingStatus represents the state of a hall slot
type BookingStatus string

const (
	StatusAvailable BookingStatus = "available"
	StatusOccupied  BookingStatus = "occupied"
	StatusPreparing BookingStatus = "preparing"
	StatusExternal  BookingStatus = "external" // booked outside the system, no family name recorded
)

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusPreparing, StatusExternal:
		return true
	}
	return false
}

// Booking is one ceremony (funeral or wake) held in a hall on a date.
// At most one booking per (HallID, Date, SlotType).
type Booking struct {
	ID           int64
	FacilityID   int64
	HallID       int64
	Date         time.Time
	SlotType     SlotType
	CeremonyTime *types.TimeString // nil = time not decided yet
	Status       BookingStatus
	FamilyName   *string // 喪家名, required unless Status is external
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresFamilyName returns true if the booking must carry a family name
func (b *Booking) RequiresFamilyName() bool {
	return b.Status != StatusExternal
}

// Validate checks the fields a caller supplies when creating or editing a booking.
// It does not look at other bookings of the hall.
func (b *Booking) Validate() error {
	if b.HallID <= 0 {
		return fmt.Errorf("%w: hallId must be positive", ErrInvalidBooking)
	}
	if b.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidBooking)
	}
	if !b.SlotType.IsValid() {
		return fmt.Errorf("%w: unknown slot type %q", ErrInvalidBooking, b.SlotType)
	}
	if !b.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidBooking, b.Status)
	}
	if b.CeremonyTime != nil {
		if err := b.CeremonyTime.Validate(); err != nil {
			return fmt.Errorf("%w: ceremony time: %v", ErrInvalidBooking, err)
		}
	}
	if b.RequiresFamilyName() && (b.FamilyName == nil || strings.TrimSpace(*b.FamilyName) == "") {
		return fmt.Errorf("%w: family name is required unless status is %s", ErrInvalidBooking, StatusExternal)
	}
	if b.FamilyName != nil && utf8.RuneCountInString(*b.FamilyName) > MaxFamilyNameLen {
		return fmt.Errorf("%w: family name longer than %d characters", ErrInvalidBooking, MaxFamilyNameLen)
	}
	if b.Notes != nil && utf8.RuneCountInString(*b.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidBooking, MaxNotesLength)
	}
	return nil
}

// IsFuneral returns true for funeral bookings
func (b *Booking) IsFuneral() bool {
	return b.SlotType == SlotFuneral
}

// IsWake returns true for wake bookings
func (b *Booking) IsWake() bool {
	return b.SlotType == SlotWake
}

// HallBookingsFilter фильтр для получения бронирований зала
type HallBookingsFilter struct {
	HallID    int64      // Обязательный параметр
	StartDate *time.Time // Начало периода (включительно)
	EndDate   *time.Time // Конец периода (включительно)
	SlotType  *SlotType  // Фильтр по типу церемонии (опционально)
}
