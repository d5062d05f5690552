package update_turnover_config

import (
	"context"

	"github.com/m04kA/SMC-HallBookingService/internal/service/config/models"
)

type ConfigService interface {
	UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
