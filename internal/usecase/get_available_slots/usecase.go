package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
)

// UseCase use case для получения слотов зала на дату
type UseCase struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	configRepo   ConfigRepository
	capacityRepo CapacityRepository
	dayTypeRepo  DayTypeRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	configRepo ConfigRepository,
	capacityRepo CapacityRepository,
	dayTypeRepo DayTypeRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		configRepo:   configRepo,
		capacityRepo: capacityRepo,
		dayTypeRepo:  dayTypeRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Каждое часовое время в рабочие часы площадки помечается как доступное или нет с причиной
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	slotTypes, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := dateOnly(uc.timeProvider.Now())
	if req.Date != nil {
		date = dateOnly(*req.Date)
	}

	uc.logger.Info("GetAvailableSlots: hall=%d, date=%s, slotTypes=%v",
		req.HallID, date.Format(domain.DateFormat), slotTypes)

	// 2. Получаем зал и площадку
	hall, err := uc.facilityRepo.GetHall(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrHallNotFound) {
			uc.logger.Warn("GetAvailableSlots: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	facility, err := uc.facilityRepo.GetFacility(ctx, hall.FacilityID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%d: %v", hall.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Состояние зала на дату
	cfg, err := uc.configRepo.GetTurnoverConfig(ctx, hall.FacilityID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get turnover config: %v", err)
		return nil, fmt.Errorf("%w: failed to get turnover config: %v", ErrInternal, err)
	}

	dayType, err := uc.dayTypeRepo.GetDayType(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get day type: %v", err)
		return nil, fmt.Errorf("%w: failed to get day type: %v", ErrInternal, err)
	}

	maxCount, err := uc.capacityRepo.GetCapacity(ctx, hall.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to get capacity: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListByHallAndDate(ctx, hall.ID, date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Генерируем и проверяем времена
	startHour, endHour := facility.BusinessHours()
	times, err := generateCandidateTimes(startHour, endHour)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate times: %v", err)
		return nil, fmt.Errorf("%w: failed to generate times: %v", ErrInternal, err)
	}

	input := turnover.Input{
		Config:   cfg,
		DayType:  dayType,
		MaxCount: maxCount,
		Existing: bookings,
	}

	resp := &Response{
		HallID:      hall.ID,
		FacilityID:  hall.FacilityID,
		Date:        date,
		IsTomobiki:  dayType.Tomobiki(),
		MaxCount:    maxCount,
		BookedCount: len(bookings),
		Slots:       make([]domain.CandidateSlot, 0, len(times)*len(slotTypes)),
	}
	if dayType != nil {
		resp.Rokuyo = dayType.Rokuyo
	}

	for _, slotType := range slotTypes {
		slots, err := annotateSlots(hall, date, slotType, times, input)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: facility=%d config cannot be evaluated: %v", hall.FacilityID, err)
			return nil, fmt.Errorf("%w: evaluate: %v", ErrInternal, err)
		}
		resp.Slots = append(resp.Slots, slots...)
	}

	uc.logger.Info("GetAvailableSlots: hall=%d, date=%s, %d of %d slots available",
		hall.ID, date.Format(domain.DateFormat), resp.AvailableCount(), len(resp.Slots))

	return resp, nil
}
