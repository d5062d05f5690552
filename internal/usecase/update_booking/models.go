package update_booking

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// Request модель запроса на редактирование бронирования (полная замена полей)
type Request struct {
	ID           int64
	HallID       int64
	Date         time.Time
	SlotType     string
	CeremonyTime *types.TimeString
	Status       string
	FamilyName   *string
	Notes        *string
}

func (r *Request) toDomain() *domain.Booking {
	status := domain.BookingStatus(r.Status)
	if status == "" {
		status = domain.StatusOccupied
	}

	booking := &domain.Booking{
		ID:         r.ID,
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

// Response модель ответа с обновленным бронированием
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

	Moved bool // зал или дата изменились
}

func fromDomain(b *domain.Booking, moved bool) *Response {
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
		Moved:        moved,
	}
}
