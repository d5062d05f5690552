package set_capacity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity"
	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity/models"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) SetCapacity(ctx context.Context, req *models.SetCapacityRequest) (*models.CapacityResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.CapacityResponse)
	return resp, args.Error(1)
}

func serve(svc *mockService, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/halls/{hallId}/capacities/{date}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPut)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHandle_Saved(t *testing.T) {
	svc := new(mockService)
	svc.On("SetCapacity", mock.Anything, mock.MatchedBy(func(req *models.SetCapacityRequest) bool {
		return req.HallID == 2 && req.MaxCount != nil && *req.MaxCount == 3 && req.Date.Day() == 14
	})).Return(&models.CapacityResponse{HallID: 2, Date: "2025-03-14", MaxCount: ptr.Ptr(3)}, nil)

	w := serve(svc, "/api/v1/halls/2/capacities/2025-03-14", `{"maxCount":3}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"maxCount":3`)
	svc.AssertExpectations(t)
}

func TestHandle_ClearWithNull(t *testing.T) {
	svc := new(mockService)
	svc.On("SetCapacity", mock.Anything, mock.MatchedBy(func(req *models.SetCapacityRequest) bool {
		return req.MaxCount == nil
	})).Return(&models.CapacityResponse{HallID: 2, Date: "2025-03-14"}, nil)

	w := serve(svc, "/api/v1/halls/2/capacities/2025-03-14", `{"maxCount":null}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"maxCount":null`)
}

func TestHandle_BookingsExist(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		body    string
		wantMsg string
	}{
		{
			name:    "clear",
			err:     fmt.Errorf("SetCapacity: %w", &capacity.BookingsExistError{Current: 2}),
			body:    `{"maxCount":null}`,
			wantMsg: "3月14日は既に2件の予約があるため、未設定（0本）にすることはできません。",
		},
		{
			name:    "reduce",
			err:     &capacity.BookingsExistError{Current: 2, MaxCount: ptr.Ptr(1)},
			body:    `{"maxCount":1}`,
			wantMsg: "3月14日は既に2件の予約があるため、上限を1本に減らすことはできません。先に予約を変更・削除してください。",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("SetCapacity", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(svc, "/api/v1/halls/2/capacities/2025-03-14", tt.body)

			assert.Equal(t, http.StatusConflict, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, w))
		})
	}
}

func TestHandle_ConcurrentModification(t *testing.T) {
	svc := new(mockService)
	svc.On("SetCapacity", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: retries exhausted", capacity.ErrConcurrentModification))

	w := serve(svc, "/api/v1/halls/2/capacities/2025-03-14", `{"maxCount":2}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, msgConcurrent, errorMessage(t, w))
}

func TestHandle_BadRequests(t *testing.T) {
	svc := new(mockService)

	w := serve(svc, "/api/v1/halls/2/capacities/2025-03-14", `{"maxCount":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidMaxCount, errorMessage(t, w))

	w = serve(svc, "/api/v1/halls/2/capacities/14-03-2025", `{"maxCount":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(svc, "/api/v1/halls/x/capacities/2025-03-14", `{"maxCount":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "SetCapacity", mock.Anything, mock.Anything)
}
