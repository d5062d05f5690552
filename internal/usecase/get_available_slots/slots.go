package get_available_slots

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// generateCandidateTimes генерирует часовые времена начала церемонии
// с начала до конца рабочего дня площадки (обе границы включительно)
func generateCandidateTimes(startHour, endHour int) ([]types.TimeString, error) {
	times := make([]types.TimeString, 0, endHour-startHour+1)
	for h := startHour; h <= endHour; h++ {
		t, err := types.FromMinutes(h * 60)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

// annotateSlots проверяет каждое время тем же правилом, что и при создании бронирования
func annotateSlots(
	hall *domain.Hall,
	date time.Time,
	slotType domain.SlotType,
	times []types.TimeString,
	in turnover.Input,
) ([]domain.CandidateSlot, error) {
	slots := make([]domain.CandidateSlot, 0, len(times))

	for _, t := range times {
		ceremony := t
		in.Candidate = &domain.Booking{
			FacilityID:   hall.FacilityID,
			HallID:       hall.ID,
			Date:         date,
			SlotType:     slotType,
			CeremonyTime: &ceremony,
		}

		decision, err := turnover.Evaluate(in)
		if err != nil {
			return nil, err
		}

		slot := domain.CandidateSlot{
			SlotType:     slotType,
			CeremonyTime: t,
			Allowed:      decision.Allowed,
			Reason:       decision.Err(),
		}

		var tooSoon *turnover.TooSoonError
		if errors.As(decision.Reason, &tooSoon) {
			// минимум после полуночи показываем временем следующего дня
			minutes := tooSoon.MinWakeMinutes
			if minutes >= types.MinutesPerDay {
				slot.NextDay = true
				minutes -= types.MinutesPerDay
			}
			if minWake, err := types.FromMinutes(minutes); err == nil {
				slot.MinWakeTime = &minWake
			}
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// dateOnly отбрасывает время суток
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
