package domain

import "github.com/m04kA/SMC-HallBookingService/pkg/types"

// CandidateSlot is an hourly ceremony start time offered for a hall-day
type CandidateSlot struct {
	SlotType     SlotType
	CeremonyTime types.TimeString
	Allowed      bool
	Reason       error             // nil when Allowed
	MinWakeTime  *types.TimeString // set when rejected as too soon
	NextDay      bool              // MinWakeTime falls on the following day
}

// IsBlocked returns true if the slot cannot be booked
func (s *CandidateSlot) IsBlocked() bool {
	return !s.Allowed
}
