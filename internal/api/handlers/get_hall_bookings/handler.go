package get_hall_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-HallBookingService/internal/service/bookings/models"
)

const (
	msgInvalidHallID = "式場IDが正しくありません"
	msgInvalidParams = "検索条件が正しくありません"
	msgInvalidRange  = "期間の指定が正しくありません"
	msgHallNotFound  = "式場が見つかりません"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/halls/{hallId}/bookings
// Query params: date или from/to (YYYY-MM-DD), slotType (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		h.logger.Warn("GET /halls/{id}/bookings - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(hallID, query.Get("date"), query.Get("from"), query.Get("to"), query.Get("slotType"))
	if err != nil {
		h.logger.Warn("GET /halls/{id}/bookings - Invalid parameters: hall_id=%d, error=%v", hallID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListHallBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrHallNotFound):
			h.logger.Warn("GET /halls/{id}/bookings - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /halls/{id}/bookings - Invalid time range: hall_id=%d", hallID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrInvalidInput), errors.Is(err, models.ErrInvalidSlotType):
			h.logger.Warn("GET /halls/{id}/bookings - Invalid input: hall_id=%d, error=%v", hallID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /halls/{id}/bookings - Failed to get bookings: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /halls/{id}/bookings - Bookings retrieved successfully: hall_id=%d, count=%d",
		hallID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
