package get_wake_constraint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/service/config"
	"github.com/m04kA/SMC-HallBookingService/internal/service/config/models"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

type mockService struct{ mock.Mock }

func (m *mockService) PreviewWakeConstraint(ctx context.Context, facilityID int64, funeralTime *types.TimeString) (*models.WakeConstraintResponse, error) {
	args := m.Called(ctx, facilityID, funeralTime)
	resp, _ := args.Get(0).(*models.WakeConstraintResponse)
	return resp, args.Error(1)
}

func serve(svc *mockService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/facilities/{facilityId}/wake-constraint", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandle_NextDayMinimum(t *testing.T) {
	svc := new(mockService)
	svc.On("PreviewWakeConstraint", mock.Anything, int64(1), mock.MatchedBy(func(ft *types.TimeString) bool {
		return ft != nil && *ft == "17:00"
	})).Return(&models.WakeConstraintResponse{
		FacilityID:    1,
		FuneralTime:   ptr.Ptr(types.TimeString("17:00")),
		MinWakeTime:   ptr.Ptr("25:00"),
		NextDay:       true,
		Source:        models.SourceInterval,
		IntervalHours: 8,
	}, nil)

	w := serve(svc, "/api/v1/facilities/1/wake-constraint?funeralTime=17:00")

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.WakeConstraintResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NextDay)
	require.NotNil(t, resp.MinWakeTime)
	assert.Equal(t, "25:00", *resp.MinWakeTime)
	svc.AssertExpectations(t)
}

func TestHandle_NoFuneralTime(t *testing.T) {
	svc := new(mockService)
	svc.On("PreviewWakeConstraint", mock.Anything, int64(1), (*types.TimeString)(nil)).
		Return(&models.WakeConstraintResponse{FacilityID: 1, Source: models.SourceNone, IntervalHours: 8}, nil)

	w := serve(svc, "/api/v1/facilities/1/wake-constraint")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"none"`)
}

func TestHandle_Errors(t *testing.T) {
	svc := new(mockService)
	svc.On("PreviewWakeConstraint", mock.Anything, int64(1), mock.Anything).Return(nil, config.ErrInvalidInput).Once()
	w := serve(svc, "/api/v1/facilities/1/wake-constraint?funeralTime=9")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("PreviewWakeConstraint", mock.Anything, int64(2), mock.Anything).Return(nil, config.ErrFacilityNotFound).Once()
	w = serve(svc, "/api/v1/facilities/2/wake-constraint")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
