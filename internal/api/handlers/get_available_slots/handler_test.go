package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	getAvailableSlots "github.com/m04kA/SMC-HallBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func serve(uc *mockUseCase, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/halls/{hallId}/available-slots", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandle_AnnotatedSlots(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.HallID == 2 && req.Date != nil && req.SlotType != nil && *req.SlotType == "通夜"
	})).Return(&getAvailableSlots.Response{
		HallID:      2,
		FacilityID:  1,
		Date:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Rokuyo:      "先勝",
		MaxCount:    ptr.Ptr(2),
		BookedCount: 1,
		Slots: []domain.CandidateSlot{
			{
				SlotType:     domain.SlotWake,
				CeremonyTime: "16:00",
				Reason:       &turnover.TooSoonError{MinWakeMinutes: 17 * 60},
				MinWakeTime:  ptr.Ptr(types.TimeString("17:00")),
			},
			{SlotType: domain.SlotWake, CeremonyTime: "17:00", Allowed: true},
			{
				SlotType:     domain.SlotWake,
				CeremonyTime: "18:00",
				Reason:       &turnover.TooSoonError{MinWakeMinutes: 25 * 60},
				MinWakeTime:  ptr.Ptr(types.TimeString("01:00")),
				NextDay:      true,
			},
		},
	}, nil)

	w := serve(uc, "/api/v1/halls/2/available-slots?date=2025-03-14&slotType=%E9%80%9A%E5%A4%9C")

	require.Equal(t, http.StatusOK, w.Code)
	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.AvailableCount)
	require.Len(t, resp.Slots, 3)
	assert.False(t, resp.Slots[0].Allowed)
	assert.Equal(t, turnover.CodeTooSoon, resp.Slots[0].ReasonCode)
	assert.Contains(t, resp.Slots[0].Reason, "17:00")
	require.NotNil(t, resp.Slots[0].MinWakeTime)
	assert.Equal(t, "17:00", *resp.Slots[0].MinWakeTime)
	assert.True(t, resp.Slots[1].Allowed)
	assert.Empty(t, resp.Slots[1].ReasonCode)
	assert.False(t, resp.Slots[0].NextDay)
	assert.True(t, resp.Slots[2].NextDay)
	require.NotNil(t, resp.Slots[2].MinWakeTime)
	assert.Equal(t, "01:00", *resp.Slots[2].MinWakeTime)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	uc := new(mockUseCase)
	w := serve(uc, "/api/v1/halls/2/available-slots?date=03-14")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableSlots.ErrHallNotFound).Once()
	w = serve(uc, "/api/v1/halls/2/available-slots")
	assert.Equal(t, http.StatusNotFound, w.Code)

	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableSlots.ErrInvalidInput).Once()
	w = serve(uc, "/api/v1/halls/2/available-slots?slotType=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
