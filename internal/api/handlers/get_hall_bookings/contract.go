package get_hall_bookings

import (
	"context"

	"github.com/m04kA/SMC-HallBookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListHallBookings(ctx context.Context, req *models.ListHallBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
