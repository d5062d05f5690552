package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-HallBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
	msgInvalidTime        = "開始時刻の形式が正しくありません（HH:MM）"
	msgInvalidInput       = "予約内容に誤りがあります。喪家名を確認してください。"
	msgHallNotFound       = "式場が見つかりません"
	msgConcurrent         = "他の利用者が同時に予約を更新しました。もう一度お試しください。"
	msgCreateFailed       = "登録に失敗しました"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondValidationError(w, err)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if rejection, ok := handlers.DescribeRejection(err); ok {
			h.logger.Warn("POST /bookings - Booking rejected: hall_id=%d, date=%s, slot_type=%s, code=%s",
				req.HallID, req.Date, req.SlotType, rejection.Code)
			handlers.RespondRejection(w, rejection)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrHallNotFound):
			h.logger.Warn("POST /bookings - Hall not found: hall_id=%d", req.HallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: hall_id=%d, error=%v", req.HallID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrConcurrentModification):
			h.logger.Warn("POST /bookings - Concurrent modification: hall_id=%d, date=%s", req.HallID, req.Date)
			handlers.RespondConflict(w, msgConcurrent)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: hall_id=%d, date=%s, error=%v",
				req.HallID, req.Date, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgCreateFailed)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, hall_id=%d, date=%s, slot_type=%s",
		result.ID, result.HallID, req.Date, result.SlotType)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
