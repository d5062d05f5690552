package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	createBooking "github.com/m04kA/SMC-HallBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

func doRequest(t *testing.T, uc *mockUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.Nop())
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	ceremony := types.TimeString("18:00")
	family := "山田"
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.HallID == 3 && req.SlotType == "通夜" && req.CeremonyTime != nil && *req.CeremonyTime == "18:00"
	})).Return(&createBooking.Response{
		ID:           10,
		FacilityID:   1,
		HallID:       3,
		Date:         time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		SlotType:     "通夜",
		CeremonyTime: &ceremony,
		Status:       "occupied",
		FamilyName:   &family,
	}, nil)

	w := doRequest(t, uc, `{"hallId":3,"date":"2025-03-14","slotType":"通夜","ceremonyTime":"18:00","familyName":"山田"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2025-03-14", resp.Date)
	require.NotNil(t, resp.CeremonyTime)
	assert.Equal(t, "18:00", *resp.CeremonyTime)
	uc.AssertExpectations(t)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantInMsg  string
	}{
		{
			name:       "wake too soon",
			err:        &turnover.TooSoonError{MinWakeMinutes: 17 * 60},
			wantStatus: http.StatusConflict,
			wantCode:   turnover.CodeTooSoon,
			wantInMsg:  "17:00",
		},
		{
			name:       "funeral on tomobiki",
			err:        turnover.ErrTomobikiRestriction,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   turnover.CodeTomobiki,
			wantInMsg:  "友引",
		},
		{
			name:       "capacity exceeded",
			err:        turnover.ErrCapacityExceeded,
			wantStatus: http.StatusConflict,
			wantCode:   turnover.CodeCapacityExceeded,
		},
		{
			name:       "already booked",
			err:        fmt.Errorf("%w: 葬儀", turnover.ErrAlreadyBooked),
			wantStatus: http.StatusConflict,
			wantCode:   turnover.CodeAlreadyBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doRequest(t, uc, `{"hallId":1,"date":"2025-03-14","slotType":"葬儀","ceremonyTime":"10:00","familyName":"佐藤"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantInMsg != "" {
				assert.Contains(t, resp.Error, tt.wantInMsg)
			}
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "hall not found", err: createBooking.ErrHallNotFound, wantStatus: http.StatusNotFound, wantMsg: msgHallNotFound},
		{name: "invalid input", err: fmt.Errorf("%w: family name", createBooking.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantMsg: msgInvalidInput},
		{name: "concurrent", err: createBooking.ErrConcurrentModification, wantStatus: http.StatusConflict, wantMsg: msgConcurrent},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError, wantMsg: msgCreateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doRequest(t, uc, `{"hallId":1,"date":"2025-03-14","slotType":"葬儀","familyName":"佐藤"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w).Error)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"hallId":`},
		{name: "unknown slot type", body: `{"hallId":1,"date":"2025-03-14","slotType":"告別式"}`},
		{name: "bad date", body: `{"hallId":1,"date":"2025/03/14","slotType":"葬儀"}`},
		{name: "bad time", body: `{"hallId":1,"date":"2025-03-14","slotType":"葬儀","ceremonyTime":"25:00"}`},
		{name: "missing hall", body: `{"date":"2025-03-14","slotType":"葬儀"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			w := doRequest(t, uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
