package get_turnover_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/config"
)

const (
	msgInvalidFacilityID = "斎場IDが正しくありません"
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

// Handle GET /api/v1/facilities/{facilityId}/turnover-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/turnover-config - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	result, err := h.service.GetConfig(r.Context(), facilityID)
	if err != nil {
		if errors.Is(err, config.ErrFacilityNotFound) {
			h.logger.Warn("GET /facilities/{id}/turnover-config - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)
			return
		}

		h.logger.Error("GET /facilities/{id}/turnover-config - Failed to get config: facility_id=%d, error=%v",
			facilityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /facilities/{id}/turnover-config - Config retrieved successfully: facility_id=%d, rules=%d",
		facilityID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
