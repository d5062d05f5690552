package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	updateBooking "github.com/m04kA/SMC-HallBookingService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "予約IDが正しくありません"
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
	msgInvalidTime        = "開始時刻の形式が正しくありません（HH:MM）"
	msgInvalidInput       = "予約内容に誤りがあります。喪家名を確認してください。"
	msgBookingNotFound    = "予約が見つかりません"
	msgHallNotFound       = "式場が見つかりません"
	msgConcurrent         = "他の利用者が同時に予約を更新しました。もう一度お試しください。"
	msgUpdateFailed       = "更新に失敗しました"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Validation failed: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondValidationError(w, err)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if rejection, ok := handlers.DescribeRejection(err); ok {
			h.logger.Warn("PUT /bookings/{id} - Booking rejected: booking_id=%d, hall_id=%d, date=%s, code=%s",
				bookingID, req.HallID, req.Date, rejection.Code)
			handlers.RespondRejection(w, rejection)
			return
		}

		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrHallNotFound):
			h.logger.Warn("PUT /bookings/{id} - Hall not found: booking_id=%d, hall_id=%d", bookingID, req.HallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrConcurrentModification):
			h.logger.Warn("PUT /bookings/{id} - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrent)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpdateFailed)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, hall_id=%d, date=%s, moved=%t",
		result.ID, result.HallID, req.Date, result.Moved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
