package turnover

import (
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// ValidateConfig rejects a facility configuration that ResolveWakeConstraint
// could not evaluate for every funeral time.
func ValidateConfig(cfg *domain.FacilityTurnoverConfig) error {
	if cfg == nil {
		return nil
	}

	if len(cfg.Rules) > domain.MaxTurnoverRules {
		return fmt.Errorf("%w: %d rules, at most %d", ErrMalformedConfig, len(cfg.Rules), domain.MaxTurnoverRules)
	}

	seen := make(map[int]struct{}, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		at, ok := rule.FuneralTime.Minutes()
		if !ok {
			return fmt.Errorf("%w: rule funeral time %q", ErrInvalidTime, string(rule.FuneralTime))
		}
		if _, dup := seen[at]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRule, rule.FuneralTime)
		}
		seen[at] = struct{}{}

		if rule.IsForbidden {
			continue
		}
		if rule.MinWakeTime == nil {
			return fmt.Errorf("%w: rule %s needs a minimum wake time or must be forbidden", ErrMalformedConfig, rule.FuneralTime)
		}
		if err := rule.MinWakeTime.Validate(); err != nil {
			return fmt.Errorf("%w: rule %s minimum wake time: %v", ErrInvalidTime, rule.FuneralTime, err)
		}
	}

	if cfg.BlockTime != nil && !cfg.BlockTime.IsZero() {
		if err := cfg.BlockTime.Validate(); err != nil {
			return fmt.Errorf("%w: block time: %v", ErrInvalidTime, err)
		}
	}

	if cfg.WakeFloor != nil && !cfg.WakeFloor.IsZero() {
		if err := cfg.WakeFloor.Validate(); err != nil {
			return fmt.Errorf("%w: wake floor: %v", ErrInvalidTime, err)
		}
	}

	if cfg.IntervalHours != nil {
		h := *cfg.IntervalHours
		if h < domain.MinIntervalHours || h > domain.MaxIntervalHours {
			return fmt.Errorf("%w: interval %d hours, expected %d..%d",
				ErrMalformedConfig, h, domain.MinIntervalHours, domain.MaxIntervalHours)
		}
	}

	return nil
}

// Canonicalize rewrites every time in cfg to zero-padded HH:MM.
// Call after ValidateConfig has passed.
func Canonicalize(cfg *domain.FacilityTurnoverConfig) {
	if cfg == nil {
		return
	}
	for i := range cfg.Rules {
		cfg.Rules[i].FuneralTime = cfg.Rules[i].FuneralTime.Canonical()
		if cfg.Rules[i].IsForbidden {
			cfg.Rules[i].MinWakeTime = nil
			continue
		}
		if cfg.Rules[i].MinWakeTime != nil {
			c := cfg.Rules[i].MinWakeTime.Canonical()
			cfg.Rules[i].MinWakeTime = &c
		}
	}
	if cfg.BlockTime != nil {
		if cfg.BlockTime.IsZero() {
			cfg.BlockTime = nil
		} else {
			c := cfg.BlockTime.Canonical()
			cfg.BlockTime = &c
		}
	}
	if cfg.WakeFloor != nil {
		if cfg.WakeFloor.IsZero() {
			cfg.WakeFloor = nil
		} else {
			c := cfg.WakeFloor.Canonical()
			cfg.WakeFloor = &c
		}
	}
}
