package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
)

// CapacityRepository интерфейс репозитория лимитов
type CapacityRepository interface {
	ListCapacities(ctx context.Context, hallID int64, from, to time.Time) ([]*domain.DailyCapacity, error)
	SetCapacity(ctx context.Context, hallID int64, date time.Time, maxCount int) error
	ClearCapacity(ctx context.Context, hallID int64, date time.Time) error
}

// BookingCounter считает бронирования зала на дату
type BookingCounter interface {
	CountByHallAndDate(ctx context.Context, hallID int64, date time.Time) (int, error)
}

// HallRepository интерфейс репозитория залов
type HallRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует изменения лимитов
type EventPublisher interface {
	Publish(event events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
