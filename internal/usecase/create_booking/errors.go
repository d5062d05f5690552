package create_booking

import "errors"

var (
	// ErrHallNotFound возвращается, когда зал не найден или не используется
	ErrHallNotFound = errors.New("create_booking: hall not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrConcurrentModification возвращается, когда транзакцию не удалось завершить из-за параллельных изменений
	ErrConcurrentModification = errors.New("create_booking: concurrent modification, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
