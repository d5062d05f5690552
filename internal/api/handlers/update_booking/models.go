package update_booking

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-HallBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model, поля заменяются целиком
type UpdateBookingRequest struct {
	HallID       int64   `json:"hallId" validate:"required,gt=0"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	SlotType     string  `json:"slotType" validate:"required,oneof=葬儀 通夜"`
	CeremonyTime *string `json:"ceremonyTime,omitempty"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=available occupied preparing external"`
	FamilyName   *string `json:"familyName,omitempty" validate:"omitempty,max=100"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	FacilityID   int64   `json:"facilityId"`
	HallID       int64   `json:"hallId"`
	Date         string  `json:"date"`
	SlotType     string  `json:"slotType"`
	CeremonyTime *string `json:"ceremonyTime,omitempty"`
	Status       string  `json:"status"`
	FamilyName   *string `json:"familyName,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Moved        bool    `json:"moved"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &updateBooking.Request{
		ID:         bookingID,
		HallID:     r.HallID,
		Date:       date,
		SlotType:   r.SlotType,
		Status:     r.Status,
		FamilyName: r.FamilyName,
		Notes:      r.Notes,
	}

	if r.CeremonyTime != nil && *r.CeremonyTime != "" {
		ceremony, err := types.NewTimeStringFromString(*r.CeremonyTime)
		if err != nil {
			return nil, err
		}
		req.CeremonyTime = &ceremony
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	var ceremony *string
	if resp.CeremonyTime != nil {
		s := resp.CeremonyTime.String()
		ceremony = &s
	}

	return &BookingResponse{
		ID:           resp.ID,
		FacilityID:   resp.FacilityID,
		HallID:       resp.HallID,
		Date:         resp.Date.Format(domain.DateFormat),
		SlotType:     resp.SlotType,
		CeremonyTime: ceremony,
		Status:       resp.Status,
		FamilyName:   resp.FamilyName,
		Notes:        resp.Notes,
		Moved:        resp.Moved,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
