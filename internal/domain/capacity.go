package domain

import "time"

// DailyCapacity is the maximum number of bookings a hall accepts on a date
type DailyCapacity struct {
	HallID    int64
	Date      time.Time
	MaxCount  int
	UpdatedAt time.Time
}

// DayType carries the rokuyo of a calendar date
type DayType struct {
	Date       time.Time
	Rokuyo     string
	IsTomobiki bool
}

// Tomobiki reports whether funerals are customarily avoided on the day.
// A nil day type counts as an ordinary day.
func (d *DayType) Tomobiki() bool {
	return d != nil && d.IsTomobiki
}
