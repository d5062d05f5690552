package get_available_slots

import (
	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	getAvailableSlots "github.com/m04kA/SMC-HallBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	HallID         int64           `json:"hallId"`
	FacilityID     int64           `json:"facilityId"`
	Date           string          `json:"date"`
	Rokuyo         string          `json:"rokuyo,omitempty"`
	IsTomobiki     bool            `json:"isTomobiki"`
	MaxCount       *int            `json:"maxCount"`
	BookedCount    int             `json:"bookedCount"`
	AvailableCount int             `json:"availableCount"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot кандидат времени начала церемонии
type AvailableSlot struct {
	SlotType     string  `json:"slotType"`
	CeremonyTime string  `json:"ceremonyTime"`
	Allowed      bool    `json:"allowed"`
	ReasonCode   string  `json:"reasonCode,omitempty"`
	Reason       string  `json:"reason,omitempty"`
	MinWakeTime  *string `json:"minWakeTime,omitempty"`
	NextDay      bool    `json:"nextDay,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(hallID int64, dateStr, slotTypeStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseOptionalDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		HallID: hallID,
		Date:   date,
	}
	if slotTypeStr != "" {
		req.SlotType = &slotTypeStr
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			SlotType:     string(slot.SlotType),
			CeremonyTime: slot.CeremonyTime.String(),
			Allowed:      slot.Allowed,
			ReasonCode:   turnover.RejectionCode(slot.Reason),
			Reason:       handlers.RejectionMessage(slot.Reason),
			NextDay:      slot.NextDay,
		}
		if slot.MinWakeTime != nil {
			s := slot.MinWakeTime.String()
			slots[i].MinWakeTime = &s
		}
	}

	return &AvailableSlotsResponse{
		HallID:         resp.HallID,
		FacilityID:     resp.FacilityID,
		Date:           resp.Date.Format(domain.DateFormat),
		Rokuyo:         resp.Rokuyo,
		IsTomobiki:     resp.IsTomobiki,
		MaxCount:       resp.MaxCount,
		BookedCount:    resp.BookedCount,
		AvailableCount: resp.AvailableCount(),
		Slots:          slots,
	}
}
