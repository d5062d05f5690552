package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// validateRequest валидирует запрос и возвращает типы церемоний для расчета
func validateRequest(req *Request) ([]domain.SlotType, error) {
	if req.HallID <= 0 {
		return nil, fmt.Errorf("%w: hallID must be positive", ErrInvalidInput)
	}

	if req.SlotType == nil || *req.SlotType == "" {
		return domain.SlotTypes, nil
	}

	slotType := domain.SlotType(*req.SlotType)
	if !slotType.IsValid() {
		return nil, fmt.Errorf("%w: unknown slot type %q", ErrInvalidInput, *req.SlotType)
	}
	return []domain.SlotType{slotType}, nil
}
