package update_turnover_config

import (
	"github.com/m04kA/SMC-HallBookingService/internal/service/config/models"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// UpdateTurnoverConfigRequest HTTP request model, заменяет конфигурацию целиком
type UpdateTurnoverConfigRequest struct {
	Rules         []RuleRequest `json:"rules" validate:"max=48,dive"`
	BlockTime     *string       `json:"blockTime,omitempty"`
	IntervalHours *int          `json:"intervalHours,omitempty" validate:"omitempty,gte=0,lte=23"`
	WakeFloor     *string       `json:"wakeFloor,omitempty"`
}

// RuleRequest правило для конкретного времени похорон
type RuleRequest struct {
	FuneralTime string  `json:"funeralTime" validate:"required"`
	MinWakeTime *string `json:"minWakeTime,omitempty"`
	IsForbidden bool    `json:"isForbidden"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Формат времени проверяет сервис
func (r *UpdateTurnoverConfigRequest) ToServiceRequest(facilityID int64) *models.UpdateConfigRequest {
	req := &models.UpdateConfigRequest{
		FacilityID:    facilityID,
		Rules:         make([]models.RuleDTO, 0, len(r.Rules)),
		BlockTime:     optionalTime(r.BlockTime),
		IntervalHours: r.IntervalHours,
		WakeFloor:     optionalTime(r.WakeFloor),
	}

	for _, rule := range r.Rules {
		req.Rules = append(req.Rules, models.RuleDTO{
			FuneralTime: types.TimeString(rule.FuneralTime),
			MinWakeTime: optionalTime(rule.MinWakeTime),
			IsForbidden: rule.IsForbidden,
		})
	}

	return req
}

// optionalTime пустая строка означает "не задано"
func optionalTime(s *string) *types.TimeString {
	if s == nil || *s == "" {
		return nil
	}
	t := types.TimeString(*s)
	return &t
}
