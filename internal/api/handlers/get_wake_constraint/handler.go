package get_wake_constraint

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/config"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

const (
	msgInvalidFacilityID = "斎場IDが正しくありません"
	msgInvalidTime       = "葬儀時刻の形式が正しくありません（HH:MM）"
	msgFacilityNotFound  = "斎場が見つかりません"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/wake-constraint
// Query params: funeralTime (HH:MM, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/wake-constraint - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var funeralTime *types.TimeString
	if raw := r.URL.Query().Get("funeralTime"); raw != "" {
		t := types.TimeString(raw)
		funeralTime = &t
	}

	result, err := h.service.PreviewWakeConstraint(r.Context(), facilityID, funeralTime)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/wake-constraint - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/wake-constraint - Invalid funeral time: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("GET /facilities/{id}/wake-constraint - Failed to resolve: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/wake-constraint - Resolved: facility_id=%d, source=%s, forbidden=%t",
		facilityID, result.Source, result.IsForbidden)
	handlers.RespondJSON(w, http.StatusOK, result)
}
