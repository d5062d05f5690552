package set_capacity

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity"
)

const (
	msgInvalidHallID      = "式場IDが正しくありません"
	msgInvalidDate        = "日付の形式が正しくありません（YYYY-MM-DD）"
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
	msgInvalidMaxCount    = "受付上限は0〜9本で指定してください"
	msgHallNotFound       = "式場が見つかりません"
	msgCannotClear        = "%d月%d日は既に%d件の予約があるため、未設定（0本）にすることはできません。"
	msgCannotReduce       = "%d月%d日は既に%d件の予約があるため、上限を%d本に減らすことはできません。先に予約を変更・削除してください。"
	msgConcurrent         = "他の利用者が同時に予約または上限を更新しました。もう一度お試しください。"
	msgUpdateFailed       = "保存に失敗しました"
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

// Handle PUT /api/v1/halls/{hallId}/capacities/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		h.logger.Warn("PUT /halls/{id}/capacities/{date} - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /halls/{id}/capacities/{date} - Invalid date: hall_id=%d, error=%v", hallID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req SetCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /halls/{id}/capacities/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PUT /halls/{id}/capacities/{date} - Validation failed: hall_id=%d, error=%v", hallID, err)
		handlers.RespondBadRequest(w, msgInvalidMaxCount)
		return
	}

	result, err := h.service.SetCapacity(r.Context(), req.ToServiceRequest(hallID, date))
	if err != nil {
		var bookingsExist *capacity.BookingsExistError
		switch {
		case errors.As(err, &bookingsExist):
			h.logger.Warn("PUT /halls/{id}/capacities/{date} - Bookings exist: hall_id=%d, date=%s, current=%d",
				hallID, date.Format("2006-01-02"), bookingsExist.Current)
			handlers.RespondConflict(w, bookingsExistMessage(date, bookingsExist))

		case errors.Is(err, capacity.ErrHallNotFound):
			h.logger.Warn("PUT /halls/{id}/capacities/{date} - Hall not found: hall_id=%d", hallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, capacity.ErrConcurrentModification):
			h.logger.Warn("PUT /halls/{id}/capacities/{date} - Concurrent modification: hall_id=%d, date=%s",
				hallID, date.Format("2006-01-02"))
			handlers.RespondConflict(w, msgConcurrent)

		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("PUT /halls/{id}/capacities/{date} - Invalid input: hall_id=%d, error=%v", hallID, err)
			handlers.RespondBadRequest(w, msgInvalidMaxCount)

		default:
			h.logger.Error("PUT /halls/{id}/capacities/{date} - Failed to set capacity: hall_id=%d, error=%v", hallID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpdateFailed)
		}
		return
	}

	h.logger.Info("PUT /halls/{id}/capacities/{date} - Capacity saved: hall_id=%d, date=%s", hallID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func bookingsExistMessage(date time.Time, e *capacity.BookingsExistError) string {
	if e.MaxCount == nil {
		return fmt.Sprintf(msgCannotClear, int(date.Month()), date.Day(), e.Current)
	}
	return fmt.Sprintf(msgCannotReduce, int(date.Month()), date.Day(), e.Current, *e.MaxCount)
}
