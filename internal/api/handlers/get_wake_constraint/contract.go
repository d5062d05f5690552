package get_wake_constraint

import (
	"context"

	"github.com/m04kA/SMC-HallBookingService/internal/service/config/models"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

type ConfigService interface {
	PreviewWakeConstraint(ctx context.Context, facilityID int64, funeralTime *types.TimeString) (*models.WakeConstraintResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
