package domain

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// TurnoverRule is a per-facility override keyed by the exact funeral start time.
type TurnoverRule struct {
	FuneralTime types.TimeString
	MinWakeTime *types.TimeString // meaningful only when IsForbidden is false
	IsForbidden bool
}

// FacilityTurnoverConfig holds the turnover settings of one facility.
// Exact rules take precedence over BlockTime, which takes precedence over the interval.
type FacilityTurnoverConfig struct {
	FacilityID    int64
	Rules         []TurnoverRule
	BlockTime     *types.TimeString // funerals at or after this time forbid a same-day wake
	IntervalHours *int              // nil = DefaultIntervalHours
	WakeFloor     *types.TimeString // optional lower bound applied to the interval result
	UpdatedAt     time.Time
}

// EffectiveIntervalHours returns the configured interval or the default
func (c *FacilityTurnoverConfig) EffectiveIntervalHours() int {
	if c.IntervalHours == nil {
		return DefaultIntervalHours
	}
	return *c.IntervalHours
}

// HasRules returns true if the facility defines any exact-time overrides
func (c *FacilityTurnoverConfig) HasRules() bool {
	return len(c.Rules) > 0
}

// DefaultTurnoverConfig returns the config used for facilities without stored settings
func DefaultTurnoverConfig(facilityID int64) *FacilityTurnoverConfig {
	return &FacilityTurnoverConfig{FacilityID: facilityID}
}
