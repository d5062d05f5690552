package turnover

import (
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// Constraint is the outcome of resolving a funeral time against a facility config.
// Both MinWakeMinutes == nil and IsForbidden == false means any wake time is fine.
type Constraint struct {
	MinWakeMinutes *int
	IsForbidden    bool
	MatchedRule    *domain.TurnoverRule // exact-time override that decided the result
	ByBlockTime    bool                 // forbidden by the facility cutoff
}

// Permits reports whether a wake at wakeMinutes satisfies the constraint
func (c Constraint) Permits(wakeMinutes int) bool {
	if c.IsForbidden {
		return false
	}
	return c.MinWakeMinutes == nil || wakeMinutes >= *c.MinWakeMinutes
}

// MinWakeTime returns the minimum as HH:MM, empty when there is none
func (c Constraint) MinWakeTime() string {
	if c.MinWakeMinutes == nil {
		return ""
	}
	return FormatMinutes(*c.MinWakeMinutes)
}

// ResolveWakeConstraint computes the earliest wake allowed after a funeral at funeralTime.
//
// Precedence, first applicable step wins:
//  1. missing or unparseable funeral time: unconstrained
//  2. rule with the same funeral time: forbidden or its minimum wake time
//  3. block time: funeral at or after it is forbidden
//  4. funeral time plus the interval (default 8h), raised to WakeFloor if set
//
// A nil cfg behaves as a facility with no settings. The only errors returned
// describe a configuration that cannot be evaluated.
func ResolveWakeConstraint(cfg *domain.FacilityTurnoverConfig, funeralTime *types.TimeString) (Constraint, error) {
	if cfg == nil {
		cfg = domain.DefaultTurnoverConfig(0)
	}

	if funeralTime == nil {
		return Constraint{}, nil
	}
	funeral, ok := funeralTime.Minutes()
	if !ok {
		return Constraint{}, nil
	}

	rule, err := matchRule(cfg.Rules, funeral)
	if err != nil {
		return Constraint{}, err
	}
	if rule != nil {
		if rule.IsForbidden {
			return Constraint{IsForbidden: true, MatchedRule: rule}, nil
		}
		if rule.MinWakeTime == nil {
			return Constraint{}, fmt.Errorf("%w: rule %s has no minimum wake time", ErrMalformedConfig, rule.FuneralTime)
		}
		minWake, ok := rule.MinWakeTime.Minutes()
		if !ok {
			return Constraint{}, fmt.Errorf("%w: rule %s minimum wake time %q", ErrInvalidTime, rule.FuneralTime, string(*rule.MinWakeTime))
		}
		return Constraint{MinWakeMinutes: &minWake, MatchedRule: rule}, nil
	}

	if cfg.BlockTime != nil && !cfg.BlockTime.IsZero() {
		block, ok := cfg.BlockTime.Minutes()
		if !ok {
			return Constraint{}, fmt.Errorf("%w: block time %q", ErrInvalidTime, string(*cfg.BlockTime))
		}
		if funeral >= block {
			return Constraint{IsForbidden: true, ByBlockTime: true}, nil
		}
	}

	interval := cfg.EffectiveIntervalHours()
	if interval < 0 {
		return Constraint{}, fmt.Errorf("%w: negative interval %d", ErrMalformedConfig, interval)
	}
	minWake := funeral + interval*60

	if cfg.WakeFloor != nil && !cfg.WakeFloor.IsZero() {
		floor, ok := cfg.WakeFloor.Minutes()
		if !ok {
			return Constraint{}, fmt.Errorf("%w: wake floor %q", ErrInvalidTime, string(*cfg.WakeFloor))
		}
		minWake = max(minWake, floor)
	}

	return Constraint{MinWakeMinutes: &minWake}, nil
}

// matchRule finds the rule whose funeral time equals funeral by minute value.
// Malformed or duplicated rule times make the whole table unusable.
func matchRule(rules []domain.TurnoverRule, funeral int) (*domain.TurnoverRule, error) {
	var found *domain.TurnoverRule
	for i := range rules {
		at, ok := rules[i].FuneralTime.Minutes()
		if !ok {
			return nil, fmt.Errorf("%w: rule funeral time %q", ErrInvalidTime, string(rules[i].FuneralTime))
		}
		if at != funeral {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rules[i].FuneralTime)
		}
		found = &rules[i]
	}
	return found, nil
}
