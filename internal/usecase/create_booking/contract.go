package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByHallAndDate(ctx context.Context, hallID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// HallRepository интерфейс репозитория залов
type HallRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
}

// ConfigRepository интерфейс репозитория настроек перехода
type ConfigRepository interface {
	GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error)
}

// CapacityRepository интерфейс репозитория дневных лимитов
type CapacityRepository interface {
	GetCapacity(ctx context.Context, hallID int64, date time.Time) (*int, error)
}

// DayTypeRepository интерфейс источника рокуё
type DayTypeRepository interface {
	GetDayType(ctx context.Context, date time.Time) (*domain.DayType, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DecisionRecorder считает решения проверки. Реализуется *metrics.Metrics
type DecisionRecorder interface {
	IncBookingDecision(slotType, result string)
}

// EventPublisher публикует изменения бронирований
type EventPublisher interface {
	Publish(event events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
