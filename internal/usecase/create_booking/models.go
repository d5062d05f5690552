package create_booking

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	HallID       int64             // ID зала
	Date         time.Time         // Дата церемонии (без времени)
	SlotType     string            // 葬儀 или 通夜
	CeremonyTime *types.TimeString // Время начала (nil - еще не определено)
	Status       string            // Пусто - occupied
	FamilyName   *string           // Фамилия семьи (обязательна, кроме external)
	Notes        *string           // Заметки
}

// toDomain собирает доменную модель из запроса
func (r *Request) toDomain() *domain.Booking {
	status := domain.BookingStatus(r.Status)
	if status == "" {
		status = domain.StatusOccupied
	}

	booking := &domain.Booking{
		HallID:     r.HallID,
		Date:       r.Date,
		SlotType:   domain.SlotType(r.SlotType),
		Status:     status,
		FamilyName: r.FamilyName,
		Notes:      r.Notes,
	}
	if r.CeremonyTime != nil && !r.CeremonyTime.IsZero() {
		ceremony := r.CeremonyTime.Canonical()
		booking.CeremonyTime = &ceremony
	}
	return booking
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	FacilityID   int64
	HallID       int64
	Date         time.Time
	SlotType     string
	CeremonyTime *types.TimeString
	Status       string
	FamilyName   *string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		FacilityID:   b.FacilityID,
		HallID:       b.HallID,
		Date:         b.Date,
		SlotType:     string(b.SlotType),
		CeremonyTime: b.CeremonyTime,
		Status:       string(b.Status),
		FamilyName:   b.FamilyName,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
