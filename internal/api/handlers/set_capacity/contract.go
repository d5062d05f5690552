package set_capacity

import (
	"context"

	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity/models"
)

type CapacityService interface {
	SetCapacity(ctx context.Context, req *models.SetCapacityRequest) (*models.CapacityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
