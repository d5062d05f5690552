package models

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// SetCapacityRequest запрос на установку лимита зала на дату.
// MaxCount == nil снимает лимит (дата становится недоступной для бронирования)
type SetCapacityRequest struct {
	HallID   int64
	Date     time.Time
	MaxCount *int
}

// CapacityResponse лимит зала на дату
type CapacityResponse struct {
	HallID    int64      `json:"hallId"`
	Date      string     `json:"date"`
	MaxCount  *int       `json:"maxCount"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CapacityListResponse лимиты зала за период
type CapacityListResponse struct {
	HallID     int64              `json:"hallId"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Capacities []CapacityResponse `json:"capacities"`
}

// FromDomainCapacity конвертирует доменную модель в ответ
func FromDomainCapacity(c *domain.DailyCapacity) CapacityResponse {
	maxCount := c.MaxCount
	resp := CapacityResponse{
		HallID:   c.HallID,
		Date:     c.Date.Format(domain.DateFormat),
		MaxCount: &maxCount,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
