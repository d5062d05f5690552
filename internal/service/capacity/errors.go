package capacity

import (
	"errors"
	"fmt"
)

var (
	// ErrHallNotFound возвращается, когда зал не найден
	ErrHallNotFound = errors.New("hall not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном периоде
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrHasBookings возвращается, когда лимит нельзя снять или уменьшить из-за существующих бронирований
	ErrHasBookings = errors.New("capacity below existing bookings")

	// ErrConcurrentModification возвращается, когда параллельные изменения не дали сохранить лимит
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// BookingsExistError лимит ниже числа бронирований на дату
type BookingsExistError struct {
	Current  int
	MaxCount *int // nil - попытка снять лимит
}

func (e *BookingsExistError) Error() string {
	if e.MaxCount == nil {
		return fmt.Sprintf("%s: %d bookings exist, cannot clear", ErrHasBookings.Error(), e.Current)
	}
	return fmt.Sprintf("%s: %d bookings exist, cannot set %d", ErrHasBookings.Error(), e.Current, *e.MaxCount)
}

func (e *BookingsExistError) Unwrap() error {
	return ErrHasBookings
}
