package update_turnover_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HallBookingService/internal/service/config"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
)

const (
	msgInvalidFacilityID  = "斎場IDが正しくありません"
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
	msgFacilityNotFound   = "斎場が見つかりません"
	msgDuplicateRule      = "同じ葬儀時刻のルールが重複しています"
	msgInvalidTime        = "時刻の形式が正しくありません（HH:MM）"
	msgMalformedConfig    = "設定内容に誤りがあります。各ルールに通夜の最短開始時刻を設定してください。"
	msgInvalidConfig      = "設定内容に誤りがあります"
	msgUpdateFailed       = "保存に失敗しました"
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

// Handle PUT /api/v1/facilities/{facilityId}/turnover-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		h.logger.Warn("PUT /facilities/{id}/turnover-config - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var req UpdateTurnoverConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facilities/{id}/turnover-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("PUT /facilities/{id}/turnover-config - Validation failed: facility_id=%d, error=%v", facilityID, err)
		handlers.RespondValidationError(w, err)
		return
	}

	result, err := h.service.UpdateConfig(r.Context(), req.ToServiceRequest(facilityID))
	if err != nil {
		switch {
		case errors.Is(err, config.ErrFacilityNotFound):
			h.logger.Warn("PUT /facilities/{id}/turnover-config - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, config.ErrInvalidConfig):
			h.logger.Warn("PUT /facilities/{id}/turnover-config - Invalid config: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondBadRequest(w, invalidConfigMessage(err))

		default:
			h.logger.Error("PUT /facilities/{id}/turnover-config - Failed to update config: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgUpdateFailed)
		}
		return
	}

	h.logger.Info("PUT /facilities/{id}/turnover-config - Config updated successfully: facility_id=%d, rules=%d",
		facilityID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func invalidConfigMessage(err error) string {
	switch {
	case errors.Is(err, turnover.ErrDuplicateRule):
		return msgDuplicateRule
	case errors.Is(err, turnover.ErrInvalidTime):
		return msgInvalidTime
	case errors.Is(err, turnover.ErrMalformedConfig):
		return msgMalformedConfig
	default:
		return msgInvalidConfig
	}
}
