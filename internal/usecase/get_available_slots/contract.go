package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByHallAndDate(ctx context.Context, hallID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// FacilityRepository интерфейс репозитория площадок и залов
type FacilityRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
}

// ConfigRepository интерфейс источника настроек перехода (кэширующий)
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе площадок
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
