package get_capacities

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity/models"
)

type CapacityService interface {
	ListCapacities(ctx context.Context, hallID int64, from, to time.Time) (*models.CapacityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
