package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
)

// Request модель запроса на получение слотов зала
type Request struct {
	HallID   int64
	Date     *time.Time // nil - сегодня
	SlotType *string    // nil - оба типа церемонии
}

// Response модель ответа со слотами зала на дату
type Response struct {
	HallID      int64
	FacilityID  int64
	Date        time.Time
	Rokuyo      string // пусто, если рокуё на дату не загружено
	IsTomobiki  bool
	MaxCount    *int // nil - лимит не задан, бронирование невозможно
	BookedCount int
	Slots       []domain.CandidateSlot
}

// AvailableCount количество разрешенных слотов
func (r *Response) AvailableCount() int {
	n := 0
	for i := range r.Slots {
		if !r.Slots[i].IsBlocked() {
			n++
		}
	}
	return n
}
