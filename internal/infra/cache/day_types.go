package cache

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

const kindDayType = "day_type"

// DayTypeSource источник данных рокуё (репозиторий)
type DayTypeSource interface {
	GetDayType(ctx context.Context, date time.Time) (*domain.DayType, error)
}

// dayTypeEntry хранит и отсутствие записи, чтобы не ходить в БД за пустыми датами
type dayTypeEntry struct {
	Found   bool
	DayType *domain.DayType
}

// DayTypes кэширующая обертка над DayTypeSource
type DayTypes struct {
	next  DayTypeSource
	store *Store
}

// NewDayTypes создает кэширующий источник типов дней
func NewDayTypes(next DayTypeSource, store *Store) *DayTypes {
	return &DayTypes{next: next, store: store}
}

func dayTypeKey(date time.Time) string {
	return "day_type:" + date.Format(domain.DateFormat)
}

// GetDayType возвращает тип дня; nil без ошибки, если записи нет
func (c *DayTypes) GetDayType(ctx context.Context, date time.Time) (*domain.DayType, error) {
	key := dayTypeKey(date)

	var cached dayTypeEntry
	if c.store.read(ctx, kindDayType, key, &cached) {
		if !cached.Found {
			return nil, nil
		}
		return cached.DayType, nil
	}

	dt, err := c.next.GetDayType(ctx, date)
	if err != nil {
		return nil, err
	}

	c.store.write(ctx, key, dayTypeEntry{Found: dt != nil, DayType: dt})
	return dt, nil
}

// Invalidate удаляет дату из кэша (после пересева календаря)
func (c *DayTypes) Invalidate(ctx context.Context, dates ...time.Time) error {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, dayTypeKey(d))
	}
	return c.store.delete(ctx, keys...)
}
