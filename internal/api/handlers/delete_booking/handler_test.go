package delete_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-HallBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func serve(svc *mockService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	return w
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		callsSvc   bool
		wantStatus int
	}{
		{name: "deleted", path: "/api/v1/bookings/5", callsSvc: true, wantStatus: http.StatusNoContent},
		{name: "not found", path: "/api/v1/bookings/5", err: bookings.ErrBookingNotFound, callsSvc: true, wantStatus: http.StatusNotFound},
		{name: "internal", path: "/api/v1/bookings/5", err: fmt.Errorf("%w: db", bookings.ErrInternal), callsSvc: true, wantStatus: http.StatusInternalServerError},
		{name: "invalid id", path: "/api/v1/bookings/-1", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.callsSvc {
				svc.On("Delete", mock.Anything, int64(5)).Return(tt.err)
			}

			w := serve(svc, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
