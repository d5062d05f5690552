package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// RuleDTO правило перехода для конкретного времени похорон
type RuleDTO struct {
	FuneralTime types.TimeString  `json:"funeralTime"`
	MinWakeTime *types.TimeString `json:"minWakeTime,omitempty"`
	IsForbidden bool              `json:"isForbidden"`
}

// UpdateConfigRequest запрос на полную замену конфигурации площадки
type UpdateConfigRequest struct {
	FacilityID    int64
	Rules         []RuleDTO
	BlockTime     *types.TimeString
	IntervalHours *int
	WakeFloor     *types.TimeString
}

// ToDomainConfig конвертирует запрос в доменную модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.FacilityTurnoverConfig {
	cfg := &domain.FacilityTurnoverConfig{
		FacilityID:    r.FacilityID,
		Rules:         make([]domain.TurnoverRule, 0, len(r.Rules)),
		BlockTime:     r.BlockTime,
		IntervalHours: r.IntervalHours,
		WakeFloor:     r.WakeFloor,
	}
	for _, rule := range r.Rules {
		cfg.Rules = append(cfg.Rules, domain.TurnoverRule{
			FuneralTime: rule.FuneralTime,
			MinWakeTime: rule.MinWakeTime,
			IsForbidden: rule.IsForbidden,
		})
	}
	return cfg
}

// ConfigResponse конфигурация переходов площадки
type ConfigResponse struct {
	FacilityID    int64             `json:"facilityId"`
	Rules         []RuleDTO         `json:"rules"`
	BlockTime     *types.TimeString `json:"blockTime,omitempty"`
	IntervalHours int               `json:"intervalHours"`
	WakeFloor     *types.TimeString `json:"wakeFloor,omitempty"`
	UpdatedAt     *time.Time        `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует доменную модель в ответ. Правила упорядочены по времени похорон
func FromDomainConfig(cfg *domain.FacilityTurnoverConfig) *ConfigResponse {
	resp := &ConfigResponse{
		FacilityID:    cfg.FacilityID,
		Rules:         make([]RuleDTO, 0, len(cfg.Rules)),
		BlockTime:     cfg.BlockTime,
		IntervalHours: cfg.EffectiveIntervalHours(),
		WakeFloor:     cfg.WakeFloor,
	}
	if !cfg.UpdatedAt.IsZero() {
		updatedAt := cfg.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	for _, rule := range cfg.Rules {
		resp.Rules = append(resp.Rules, RuleDTO{
			FuneralTime: rule.FuneralTime,
			MinWakeTime: rule.MinWakeTime,
			IsForbidden: rule.IsForbidden,
		})
	}
	SortRules(resp.Rules)
	return resp
}

// SortRules упорядочивает правила по времени похорон
func SortRules(rules []RuleDTO) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].FuneralTime.IsBefore(rules[j].FuneralTime)
	})
}

// Источник минимального времени поминок
const (
	SourceNone     = "none"
	SourceRule     = "rule"
	SourceBlock    = "block_time"
	SourceInterval = "interval"
)

// WakeConstraintResponse результат симуляции для заданного времени похорон
type WakeConstraintResponse struct {
	FacilityID    int64             `json:"facilityId"`
	FuneralTime   *types.TimeString `json:"funeralTime,omitempty"`
	IsForbidden   bool              `json:"isForbidden"`
	MinWakeTime   *string           `json:"minWakeTime,omitempty"` // может быть >= 24:00
	NextDay       bool              `json:"nextDay"`
	Source        string            `json:"source"`
	IntervalHours int               `json:"intervalHours"`
}
