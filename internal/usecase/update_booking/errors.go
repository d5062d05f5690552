package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда редактируемое бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrHallNotFound возвращается, когда зал не найден или не используется
	ErrHallNotFound = errors.New("update_booking: hall not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrConcurrentModification возвращается, когда транзакцию не удалось завершить из-за параллельных изменений
	ErrConcurrentModification = errors.New("update_booking: concurrent modification, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
