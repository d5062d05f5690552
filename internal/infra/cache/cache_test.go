package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/pkg/logger"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/types"
)

type mockConfigSource struct {
	mock.Mock
}

func (m *mockConfigSource) GetTurnoverConfig(ctx context.Context, facilityID int64) (*domain.FacilityTurnoverConfig, error) {
	args := m.Called(ctx, facilityID)
	cfg, _ := args.Get(0).(*domain.FacilityTurnoverConfig)
	return cfg, args.Error(1)
}

type mockDayTypeSource struct {
	mock.Mock
}

func (m *mockDayTypeSource) GetDayType(ctx context.Context, date time.Time) (*domain.DayType, error) {
	args := m.Called(ctx, date)
	dt, _ := args.Get(0).(*domain.DayType)
	return dt, args.Error(1)
}

type countingRecorder struct {
	results map[string]int
}

func (r *countingRecorder) IncCache(kind, result string) {
	r.results[kind+":"+result]++
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis, *countingRecorder) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rec := &countingRecorder{results: map[string]int{}}
	return NewStore(client, time.Minute, "test:", rec, logger.Nop()), mr, rec
}

func TestTurnoverConfigs_ReadThrough(t *testing.T) {
	store, mr, rec := newTestStore(t)
	ctx := context.Background()

	cfg := &domain.FacilityTurnoverConfig{
		FacilityID:    7,
		BlockTime:     ptr.Ptr(types.TimeString("13:00")),
		IntervalHours: ptr.Ptr(6),
		Rules: []domain.TurnoverRule{
			{FuneralTime: "09:00", MinWakeTime: ptr.Ptr(types.TimeString("14:00"))},
			{FuneralTime: "11:00", IsForbidden: true},
		},
	}

	src := &mockConfigSource{}
	src.On("GetTurnoverConfig", mock.Anything, int64(7)).Return(cfg, nil).Once()

	cached := NewTurnoverConfigs(src, store)

	first, err := cached.GetTurnoverConfig(ctx, 7)
	require.NoError(t, err)
	second, err := cached.GetTurnoverConfig(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, cfg.Rules, second.Rules)
	assert.Equal(t, "13:00", second.BlockTime.String())
	assert.Equal(t, 6, *second.IntervalHours)
	assert.Equal(t, first.FacilityID, second.FacilityID)
	assert.True(t, mr.Exists("test:turnover_config:7"))
	assert.Equal(t, 1, rec.results["turnover_config:miss"])
	assert.Equal(t, 1, rec.results["turnover_config:hit"])
	src.AssertExpectations(t)
}

func TestTurnoverConfigs_Invalidate(t *testing.T) {
	store, mr, _ := newTestStore(t)
	ctx := context.Background()

	src := &mockConfigSource{}
	src.On("GetTurnoverConfig", mock.Anything, int64(1)).Return(&domain.FacilityTurnoverConfig{FacilityID: 1}, nil).Twice()

	cached := NewTurnoverConfigs(src, store)

	_, err := cached.GetTurnoverConfig(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, cached.Invalidate(ctx, 1))
	assert.False(t, mr.Exists("test:turnover_config:1"))

	_, err = cached.GetTurnoverConfig(ctx, 1)
	require.NoError(t, err)
	src.AssertExpectations(t)
}

func TestTurnoverConfigs_ExpiresAfterTTL(t *testing.T) {
	store, mr, _ := newTestStore(t)
	ctx := context.Background()

	src := &mockConfigSource{}
	src.On("GetTurnoverConfig", mock.Anything, int64(2)).Return(&domain.FacilityTurnoverConfig{FacilityID: 2}, nil).Twice()

	cached := NewTurnoverConfigs(src, store)

	_, err := cached.GetTurnoverConfig(ctx, 2)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cached.GetTurnoverConfig(ctx, 2)
	require.NoError(t, err)

	src.AssertExpectations(t)
}

func TestDayTypes_CachesAbsence(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	src := &mockDayTypeSource{}
	src.On("GetDayType", mock.Anything, date).Return(nil, nil).Once()

	cached := NewDayTypes(src, store)

	dt, err := cached.GetDayType(ctx, date)
	require.NoError(t, err)
	assert.Nil(t, dt)

	dt, err = cached.GetDayType(ctx, date)
	require.NoError(t, err)
	assert.Nil(t, dt)
	src.AssertExpectations(t)
}

func TestDayTypes_CachesTomobiki(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	src := &mockDayTypeSource{}
	src.On("GetDayType", mock.Anything, date).
		Return(&domain.DayType{Date: date, Rokuyo: domain.RokuyoTomobiki, IsTomobiki: true}, nil).Once()

	cached := NewDayTypes(src, store)

	_, err := cached.GetDayType(ctx, date)
	require.NoError(t, err)
	dt, err := cached.GetDayType(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, dt)
	assert.True(t, dt.IsTomobiki)
	assert.Equal(t, domain.RokuyoTomobiki, dt.Rokuyo)
	src.AssertExpectations(t)
}

func TestStore_RedisDownFallsBackToSource(t *testing.T) {
	store, mr, rec := newTestStore(t)
	mr.Close()

	src := &mockConfigSource{}
	src.On("GetTurnoverConfig", mock.Anything, int64(3)).Return(&domain.FacilityTurnoverConfig{FacilityID: 3}, nil).Once()

	cfg, err := NewTurnoverConfigs(src, store).GetTurnoverConfig(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.FacilityID)
	assert.Equal(t, 1, rec.results["turnover_config:error"])
}

func TestStore_Disabled(t *testing.T) {
	store := NewStore(nil, time.Minute, "", nil, logger.Nop())
	assert.False(t, store.Enabled())

	src := &mockConfigSource{}
	src.On("GetTurnoverConfig", mock.Anything, int64(4)).Return(&domain.FacilityTurnoverConfig{FacilityID: 4}, nil).Twice()

	cached := NewTurnoverConfigs(src, store)
	_, _ = cached.GetTurnoverConfig(context.Background(), 4)
	_, _ = cached.GetTurnoverConfig(context.Background(), 4)
	assert.NoError(t, cached.Invalidate(context.Background(), 4))
	src.AssertExpectations(t)
}
