package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrAlreadyBooked возвращается при нарушении уникального индекса (hall_id, date, slot_type)
	ErrAlreadyBooked = errors.New("booking.repository: slot type already booked for this hall and date")

	// ErrHallNotFound возвращается при нарушении внешнего ключа на зал
	ErrHallNotFound = errors.New("booking.repository: hall not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
