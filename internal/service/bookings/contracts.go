package bookings

import (
	"context"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByHall(ctx context.Context, filter domain.HallBookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// HallRepository интерфейс репозитория залов
type HallRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
}

// EventPublisher публикует изменения занятости залов
type EventPublisher interface {
	Publish(event events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
