package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

// fakeStore in-memory состояние одной площадки
type fakeStore struct {
	facility *domain.Facility
	hall     *domain.Hall
	cfg      *domain.FacilityTurnoverConfig
	dayType  *domain.DayType
	maxCount *int
	bookings []*domain.Booking

	requestedDate time.Time
}

func (s *fakeStore) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	return s.facility, nil
}

func (s *fakeStore) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	if s.hall == nil || s.hall.ID != id {
		return nil, facilityRepo.ErrHallNotFound
	}
	return s.hall, nil
}

func (s *fakeStore) GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error) {
	return s.cfg, nil
}

func (s *fakeStore) GetCapacity(ctx context.Context, hallID int64, date time.Time) (*int, error) {
	return s.maxCount, nil
}

func (s *fakeStore) GetDayType(ctx context.Context, date time.Time) (*domain.DayType, error) {
	s.requestedDate = date
	return s.dayType, nil
}

func (s *fakeStore) ListByHallAndDate(ctx context.Context, hallID int64, date time.Time, excludeID *int64) ([]*domain.Booking, error) {
	return s.bookings, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func newStore() *fakeStore {
	return &fakeStore{
		facility: &domain.Facility{ID: 1, StartHour: 9, EndHour: 18},
		hall:     &domain.Hall{ID: 3, FacilityID: 1, IsActive: true},
		cfg:      &domain.FacilityTurnoverConfig{FacilityID: 1},
		maxCount: ptr.Ptr(2),
	}
}

func newUseCase(s *fakeStore) *UseCase {
	return NewUseCase(s, s, s, s, s, fixedTime{now: day.Add(15 * time.Hour)}, logger.Nop())
}

func slotsOf(resp *Response, slotType domain.SlotType) map[types.TimeString]domain.CandidateSlot {
	out := make(map[types.TimeString]domain.CandidateSlot)
	for _, s := range resp.Slots {
		if s.SlotType == slotType {
			out[s.CeremonyTime] = s
		}
	}
	return out
}

func TestExecute_EmptyHallAllSlotsOpen(t *testing.T) {
	s := newStore()
	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day})
	require.NoError(t, err)

	// 9:00..18:00 включительно, для похорон и поминок
	assert.Len(t, resp.Slots, 20)
	assert.Equal(t, 20, resp.AvailableCount())
}

func TestExecute_WakeSlotsAfterFuneral(t *testing.T) {
	s := newStore()
	funeralAt := types.TimeString("10:00")
	s.bookings = []*domain.Booking{{ID: 1, HallID: 3, Date: day, SlotType: domain.SlotFuneral, CeremonyTime: &funeralAt}}

	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day, SlotType: ptr.Ptr(string(domain.SlotWake))})
	require.NoError(t, err)

	wakes := slotsOf(resp, domain.SlotWake)
	require.Len(t, wakes, 10)

	early := wakes["17:00"]
	assert.False(t, early.Allowed)
	assert.ErrorIs(t, early.Reason, turnover.ErrTurnoverTooSoon)
	require.NotNil(t, early.MinWakeTime)
	assert.Equal(t, types.TimeString("18:00"), *early.MinWakeTime)

	assert.True(t, wakes["18:00"].Allowed)
	assert.Equal(t, 1, resp.AvailableCount())
}

func TestExecute_MinWakePastMidnightMarkedNextDay(t *testing.T) {
	s := newStore()
	funeralAt := types.TimeString("17:00")
	s.bookings = []*domain.Booking{{ID: 1, HallID: 3, Date: day, SlotType: domain.SlotFuneral, CeremonyTime: &funeralAt}}

	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day, SlotType: ptr.Ptr(string(domain.SlotWake))})
	require.NoError(t, err)

	// 17:00 + 8ч = 01:00 следующего дня, все поминки в этот день слишком рано
	wakes := slotsOf(resp, domain.SlotWake)
	last := wakes["18:00"]
	assert.ErrorIs(t, last.Reason, turnover.ErrTurnoverTooSoon)
	assert.True(t, last.NextDay)
	require.NotNil(t, last.MinWakeTime)
	assert.Equal(t, types.TimeString("01:00"), *last.MinWakeTime)
	assert.Zero(t, resp.AvailableCount())
}

func TestExecute_MinWakeSameDayNotNextDay(t *testing.T) {
	s := newStore()
	funeralAt := types.TimeString("09:00")
	s.bookings = []*domain.Booking{{ID: 1, HallID: 3, Date: day, SlotType: domain.SlotFuneral, CeremonyTime: &funeralAt}}

	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day, SlotType: ptr.Ptr(string(domain.SlotWake))})
	require.NoError(t, err)

	early := slotsOf(resp, domain.SlotWake)["10:00"]
	assert.False(t, early.NextDay)
	require.NotNil(t, early.MinWakeTime)
	assert.Equal(t, types.TimeString("17:00"), *early.MinWakeTime)
}

func TestExecute_FuneralSlotsLimitedByExistingWake(t *testing.T) {
	s := newStore()
	s.cfg.BlockTime = ptr.Ptr(types.TimeString("15:00"))
	wakeAt := types.TimeString("18:00")
	s.bookings = []*domain.Booking{{ID: 2, HallID: 3, Date: day, SlotType: domain.SlotWake, CeremonyTime: &wakeAt}}

	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day, SlotType: ptr.Ptr(string(domain.SlotFuneral))})
	require.NoError(t, err)

	funerals := slotsOf(resp, domain.SlotFuneral)
	assert.True(t, funerals["09:00"].Allowed)
	assert.True(t, funerals["10:00"].Allowed)
	assert.ErrorIs(t, funerals["11:00"].Reason, turnover.ErrTurnoverTooSoon)
	assert.ErrorIs(t, funerals["15:00"].Reason, turnover.ErrTurnoverForbidden)
}

func TestExecute_TomobikiBlocksFuneralsOnly(t *testing.T) {
	s := newStore()
	s.dayType = &domain.DayType{Date: day, Rokuyo: domain.RokuyoTomobiki, IsTomobiki: true}

	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day})
	require.NoError(t, err)
	assert.True(t, resp.IsTomobiki)
	assert.Equal(t, domain.RokuyoTomobiki, resp.Rokuyo)

	for _, slot := range slotsOf(resp, domain.SlotFuneral) {
		assert.ErrorIs(t, slot.Reason, turnover.ErrTomobikiRestriction)
	}
	for _, slot := range slotsOf(resp, domain.SlotWake) {
		assert.True(t, slot.Allowed)
	}
}

func TestExecute_NoCapacityBlocksEverything(t *testing.T) {
	s := newStore()
	s.maxCount = nil

	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3, Date: &day})
	require.NoError(t, err)
	assert.Zero(t, resp.AvailableCount())
	assert.ErrorIs(t, resp.Slots[0].Reason, turnover.ErrNoCapacityConfigured)
}

func TestExecute_DefaultsToToday(t *testing.T) {
	s := newStore()
	resp, err := newUseCase(s).Execute(context.Background(), &Request{HallID: 3})
	require.NoError(t, err)
	assert.Equal(t, day, resp.Date)
	assert.Equal(t, day, s.requestedDate)
}

func TestExecute_Errors(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	_, err := uc.Execute(context.Background(), &Request{HallID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{HallID: 3, SlotType: ptr.Ptr("告別式")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{HallID: 99})
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func TestGenerateCandidateTimes(t *testing.T) {
	times, err := generateCandidateTimes(9, 11)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, times)
}
