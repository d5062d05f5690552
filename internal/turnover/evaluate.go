package turnover

import "github.com/m04kA/SMC-HallBookingService/internal/domain"

// Input is a snapshot of everything needed to judge one booking
type Input struct {
	Config    *domain.FacilityTurnoverConfig
	DayType   *domain.DayType
	MaxCount  *int
	Existing  []*domain.Booking // bookings of the same hall and date
	Candidate *domain.Booking
}

// Evaluate runs the feasibility checks and then the capacity gate.
// The booking being edited is not counted against capacity.
func Evaluate(in Input) (Decision, error) {
	d, err := CanPlaceBooking(in.Config, in.DayType, in.Existing, in.Candidate)
	if err != nil || !d.Allowed {
		return d, err
	}
	return HasCapacity(in.MaxCount, len(Others(in.Existing, in.Candidate.ID))), nil
}
