package domain

// Default configuration values
const (
	DefaultIntervalHours = 8 // minimum gap between a funeral and a same-day wake
	DefaultStartHour     = 9
	DefaultEndHour       = 18
)

// Business validation constants
const (
	MinDailyCapacity = 0
	MaxDailyCapacity = 9
	MinIntervalHours = 0
	MaxIntervalHours = 23
	MaxTurnoverRules = 48
	MaxNotesLength   = 500
	MaxFamilyNameLen = 100
	MaxCapacityRange = 62 // days per capacities listing
	RokuyoTomobiki   = "友引"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotTypes lists ceremony kinds in display order
var SlotTypes = []SlotType{
	SlotFuneral,
	SlotWake,
}
