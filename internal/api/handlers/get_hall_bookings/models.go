package get_hall_bookings

import (
	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// date задает один день и имеет приоритет над from/to
func ToServiceRequest(hallID int64, dateStr, fromStr, toStr, slotTypeStr string) (*models.ListHallBookingsRequest, error) {
	req := &models.ListHallBookingsRequest{HallID: hallID}

	if dateStr != "" {
		fromStr, toStr = dateStr, dateStr
	}

	from, err := handlers.ParseOptionalDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseOptionalDate(toStr)
	if err != nil {
		return nil, err
	}
	req.StartDate = from
	req.EndDate = to

	if slotTypeStr != "" {
		req.SlotType = &slotTypeStr
	}

	return req, nil
}
