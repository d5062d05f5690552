package set_capacity

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity/models"
)

// SetCapacityRequest HTTP request model. null снимает лимит
type SetCapacityRequest struct {
	MaxCount *int `json:"maxCount" validate:"omitempty,gte=0,lte=9"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetCapacityRequest) ToServiceRequest(hallID int64, date time.Time) *models.SetCapacityRequest {
	return &models.SetCapacityRequest{
		HallID:   hallID,
		Date:     date,
		MaxCount: r.MaxCount,
	}
}
