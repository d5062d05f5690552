package update_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	updateBooking "github.com/m04kA/SMC-HallBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*updateBooking.Response)
	return resp, args.Error(1)
}

func serve(uc *mockUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPut)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return w
}

const validBody = `{"hallId":2,"date":"2025-03-15","slotType":"葬儀","ceremonyTime":"11:00","familyName":"鈴木"}`

func TestHandle_Updated(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateBooking.Request) bool {
		return req.ID == 7 && req.HallID == 2
	})).Return(&updateBooking.Response{
		ID:       7,
		HallID:   2,
		Date:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		SlotType: "葬儀",
		Status:   "occupied",
		Moved:    true,
	}, nil)

	w := serve(uc, "/api/v1/bookings/7", validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Moved)
	assert.Equal(t, "2025-03-15", resp.Date)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: updateBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "hall not found", err: updateBooking.ErrHallNotFound, wantStatus: http.StatusNotFound},
		{name: "concurrent", err: updateBooking.ErrConcurrentModification, wantStatus: http.StatusConflict},
		{name: "forbidden turnover", err: turnover.ErrTurnoverForbidden, wantStatus: http.StatusConflict, wantCode: turnover.CodeForbidden},
		{name: "internal", err: updateBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, "/api/v1/bookings/7", validBody)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := new(mockUseCase)
	w := serve(uc, "/api/v1/bookings/abc", validBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
