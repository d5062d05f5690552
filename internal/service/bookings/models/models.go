package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

var (
	// ErrInvalidSlotType возвращается при неизвестном типе церемонии
	ErrInvalidSlotType = errors.New("invalid slot type")
)

// ListHallBookingsRequest запрос бронирований зала за период
type ListHallBookingsRequest struct {
	HallID    int64
	StartDate *time.Time
	EndDate   *time.Time
	SlotType  *string
}

// ToDomainFilter конвертирует запрос в фильтр репозитория
func (r *ListHallBookingsRequest) ToDomainFilter() (domain.HallBookingsFilter, error) {
	filter := domain.HallBookingsFilter{
		HallID:    r.HallID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.SlotType != nil {
		st := domain.SlotType(*r.SlotType)
		if !st.IsValid() {
			return filter, ErrInvalidSlotType
		}
		filter.SlotType = &st
	}

	return filter, nil
}

// BookingResponse бронирование зала
type BookingResponse struct {
	ID           int64             `json:"id"`
	FacilityID   int64             `json:"facilityId"`
	HallID       int64             `json:"hallId"`
	Date         string            `json:"date"`
	SlotType     string            `json:"slotType"`
	CeremonyTime *types.TimeString `json:"ceremonyTime,omitempty"`
	Status       string            `json:"status"`
	FamilyName   *string           `json:"familyName,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		FacilityID:   b.FacilityID,
		HallID:       b.HallID,
		Date:         b.Date.Format(domain.DateFormat),
		SlotType:     string(b.SlotType),
		CeremonyTime: b.CeremonyTime,
		Status:       string(b.Status),
		FamilyName:   b.FamilyName,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных моделей
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
