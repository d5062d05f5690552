package cache

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

const kindTurnoverConfig = "turnover_config"

// TurnoverConfigSource источник конфигурации переходов (репозиторий)
type TurnoverConfigSource interface {
	GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error)
}

// TurnoverConfigs кэширующая обертка над TurnoverConfigSource
type TurnoverConfigs struct {
	next  TurnoverConfigSource
	store *Store
}

// NewTurnoverConfigs создает кэширующий источник конфигурации
func NewTurnoverConfigs(next TurnoverConfigSource, store *Store) *TurnoverConfigs {
	return &TurnoverConfigs{next: next, store: store}
}

func turnoverConfigKey(facilityID int64) string {
	return fmt.Sprintf("turnover_config:%d", facilityID)
}

// GetTurnoverConfig возвращает конфигурацию из кэша или из источника
func (c *TurnoverConfigs) GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error) {
	key := turnoverConfigKey(facilityID)

	var cached domain.FacilityTurnoverConfig
	if c.store.read(ctx, kindTurnoverConfig, key, &cached) {
		return &cached, nil
	}

	cfg, err := c.next.GetTurnoverConfig(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	c.store.write(ctx, key, cfg)
	return cfg, nil
}

// Invalidate удаляет конфигурацию площадки из кэша
func (c *TurnoverConfigs) Invalidate(ctx context.Context, facilityID int64) error {
	return c.store.delete(ctx, turnoverConfigKey(facilityID))
}
