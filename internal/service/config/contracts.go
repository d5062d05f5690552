package config

import (
	"context"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
)

// ConfigReader источник конфигурации переходов (обычно кэширующий)
type ConfigReader interface {
	GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error)
}

// ConfigWriter сохраняет конфигурацию переходов
type ConfigWriter interface {
	SaveTurnoverConfig(ctx context.Context, cfg *domain.FacilityTurnoverConfig) error
}

// FacilityRepository интерфейс репозитория площадок
type FacilityRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
}

// CacheInvalidator сбрасывает кэшированную конфигурацию площадки
type CacheInvalidator interface {
	Invalidate(ctx context.Context, facilityID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует изменения конфигурации
type EventPublisher interface {
	Publish(event events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
