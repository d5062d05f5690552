package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-HallBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidHallID = "式場IDが正しくありません"
	msgInvalidDate   = "日付の形式が正しくありません（YYYY-MM-DD）"
	msgInvalidInput  = "種別の指定が正しくありません（葬儀・通夜）"
	msgHallNotFound  = "式場が見つかりません"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/halls/{hallId}/available-slots
// Query params: date (YYYY-MM-DD, по умолчанию сегодня), slotType (葬儀/通夜, по умолчанию оба)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		h.logger.Warn("GET /halls/{id}/available-slots - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(hallID, query.Get("date"), query.Get("slotType"))
	if err != nil {
		h.logger.Warn("GET /halls/{id}/available-slots - Invalid date format: hall_id=%d, error=%v", hallID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrHallNotFound):
			h.logger.Warn("GET /halls/{id}/available-slots - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /halls/{id}/available-slots - Invalid input: hall_id=%d, error=%v", hallID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /halls/{id}/available-slots - Failed to get slots: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /halls/{id}/available-slots - Slots retrieved successfully: hall_id=%d, date=%s, slots_count=%d, available=%d",
		hallID, response.Date, len(response.Slots), response.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
