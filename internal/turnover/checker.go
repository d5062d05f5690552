package turnover

import (
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// Decision is the verdict on a proposed booking
type Decision struct {
	Allowed bool
	Reason  error // wraps one of the rejection errors when not allowed
}

// Allow returns a positive decision
func Allow() Decision {
	return Decision{Allowed: true}
}

// Reject returns a negative decision with the given reason
func Reject(reason error) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err returns the rejection reason, nil when the booking is allowed
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// CanPlaceBooking decides whether candidate may join existing bookings of the same hall and date.
//
// Checks run in order and the first failure wins: one booking per ceremony kind,
// no funeral on tomobiki, then the turnover constraint in both directions.
// A booking in existing with the candidate's ID is the one being edited and is ignored.
// A nil dayType is an ordinary day.
func CanPlaceBooking(
	cfg *domain.FacilityTurnoverConfig,
	dayType *domain.DayType,
	existing []*domain.Booking,
	candidate *domain.Booking,
) (Decision, error) {
	if candidate == nil {
		return Decision{}, fmt.Errorf("%w: nil candidate booking", ErrMalformedConfig)
	}

	others := Others(existing, candidate.ID)

	for _, b := range others {
		if b.SlotType == candidate.SlotType {
			return Reject(fmt.Errorf("%w: %s", ErrAlreadyBooked, candidate.SlotType)), nil
		}
	}

	if candidate.IsFuneral() && dayType.Tomobiki() {
		return Reject(ErrTomobikiRestriction), nil
	}

	if !candidate.SlotType.IsValid() {
		return Allow(), nil
	}
	counterpart := findSlot(others, candidate.SlotType.Opposite())
	if counterpart == nil {
		return Allow(), nil
	}

	// the constraint always derives from the funeral, the wake is what gets judged
	if candidate.IsWake() {
		c, err := ResolveWakeConstraint(cfg, counterpart.CeremonyTime)
		if err != nil {
			return Decision{}, err
		}
		return judge(c, candidate), nil
	}

	c, err := ResolveWakeConstraint(cfg, candidate.CeremonyTime)
	if err != nil {
		return Decision{}, err
	}
	return judge(c, counterpart), nil
}

// judge compares the wake booking's time with the resolved constraint.
// A wake without a time cannot be compared, only a forbidden result rejects it.
func judge(c Constraint, wake *domain.Booking) Decision {
	if c.IsForbidden {
		return Reject(ErrTurnoverForbidden)
	}
	if wake.CeremonyTime == nil {
		return Allow()
	}
	wakeAt, ok := wake.CeremonyTime.Minutes()
	if !ok || c.Permits(wakeAt) {
		return Allow()
	}
	return Reject(&TooSoonError{MinWakeMinutes: *c.MinWakeMinutes})
}

// Others returns existing bookings except nil entries and the one with excludeID.
// An excludeID of 0 excludes nothing.
func Others(existing []*domain.Booking, excludeID int64) []*domain.Booking {
	out := make([]*domain.Booking, 0, len(existing))
	for _, b := range existing {
		if b == nil {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		out = append(out, b)
	}
	return out
}

func findSlot(bookings []*domain.Booking, slotType domain.SlotType) *domain.Booking {
	for _, b := range bookings {
		if b.SlotType == slotType {
			return b
		}
	}
	return nil
}
