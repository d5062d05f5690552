package get_capacities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity"
)

const (
	msgInvalidHallID = "式場IDが正しくありません"
	msgMissingRange  = "期間（from, to）を指定してください"
	msgInvalidDate   = "日付の形式が正しくありません（YYYY-MM-DD）"
	msgInvalidRange  = "期間の指定が正しくありません（最大62日）"
	msgHallNotFound  = "式場が見つかりません"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/halls/{hallId}/capacities
// Query params: from, to (YYYY-MM-DD, обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		h.logger.Warn("GET /halls/{id}/capacities - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	query := r.URL.Query()
	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /halls/{id}/capacities - Missing range: hall_id=%d", hallID)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := handlers.ParseDate(fromStr)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/capacities - Invalid from: hall_id=%d, error=%v", hallID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.ParseDate(toStr)
	if err != nil {
		h.logger.Warn("GET /halls/{id}/capacities - Invalid to: hall_id=%d, error=%v", hallID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListCapacities(r.Context(), hallID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrHallNotFound):
			h.logger.Warn("GET /halls/{id}/capacities - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, capacity.ErrInvalidTimeRange):
			h.logger.Warn("GET /halls/{id}/capacities - Invalid range: hall_id=%d, from=%s, to=%s", hallID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /halls/{id}/capacities - Failed to list capacities: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /halls/{id}/capacities - Capacities retrieved successfully: hall_id=%d, count=%d",
		hallID, len(result.Capacities))
	handlers.RespondJSON(w, http.StatusOK, result)
}
