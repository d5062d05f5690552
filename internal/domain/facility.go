package domain

import "time"

// Facility is a funeral venue that owns one or more halls
type Facility struct {
	ID        int64
	Name      string
	Area      *string
	Phone     *string
	StartHour int // first bookable hour of the day
	EndHour   int // last bookable hour of the day (inclusive)
	IsActive  bool
	CreatedAt time.Time
}

// Hall is a ceremony room inside a facility
type Hall struct {
	ID             int64
	FacilityID     int64
	Name           string
	Capacity       *int // seats
	HasWaitingRoom bool
	IsActive       bool
	CreatedAt      time.Time
}

// BusinessHours returns the facility opening hours, falling back to defaults
// when the stored range is empty or inverted.
func (f *Facility) BusinessHours() (start, end int) {
	start, end = f.StartHour, f.EndHour
	if start < 0 || end > 23 || start > end || (start == 0 && end == 0) {
		return DefaultStartHour, DefaultEndHour
	}
	return start, end
}
