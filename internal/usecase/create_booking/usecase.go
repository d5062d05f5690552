package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
	bookingRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
	"github.com/m04kA/SMC-HallBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HallBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования зала
type UseCase struct {
	bookingRepo  BookingRepository
	hallRepo     HallRepository
	configRepo   ConfigRepository
	capacityRepo CapacityRepository
	dayTypeRepo  DayTypeRepository
	txManager    TransactionManager
	recorder     DecisionRecorder
	publisher    EventPublisher
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. recorder может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	hallRepo HallRepository,
	configRepo ConfigRepository,
	capacityRepo CapacityRepository,
	dayTypeRepo DayTypeRepository,
	txManager TransactionManager,
	recorder DecisionRecorder,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		hallRepo:     hallRepo,
		configRepo:   configRepo,
		capacityRepo: capacityRepo,
		dayTypeRepo:  dayTypeRepo,
		txManager:    txManager,
		recorder:     recorder,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка и запись идут в одной сериализуемой транзакции: из двух параллельных
// запросов на один зал и дату проходит только один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: hall=%d, date=%s, slot=%s, time=%v",
		req.HallID, req.Date.Format(domain.DateFormat), req.SlotType, ptr.Deref(req.CeremonyTime, ""))

	// 1. Валидация входных данных
	candidate := req.toDomain()
	if err := candidate.Validate(); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем зал
	hall, err := uc.hallRepo.GetHall(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrHallNotFound) {
			uc.logger.Warn("CreateBooking: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		uc.logger.Error("CreateBooking: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}
	if !hall.IsActive {
		uc.logger.Warn("CreateBooking: hall id=%d is inactive", req.HallID)
		return nil, ErrHallNotFound
	}
	candidate.FacilityID = hall.FacilityID

	var result *domain.Booking

	// 3. Перечитываем состояние зала и пишем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Настройки перехода площадки
		cfg, err := uc.configRepo.GetTurnoverConfig(txCtx, hall.FacilityID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get turnover config: %v", err)
			return fmt.Errorf("%w: failed to get turnover config: %w", ErrInternal, err)
		}

		// 3.2. Рокуё (отсутствие записи - обычный день)
		dayType, err := uc.dayTypeRepo.GetDayType(txCtx, candidate.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get day type: %v", err)
			return fmt.Errorf("%w: failed to get day type: %w", ErrInternal, err)
		}

		// 3.3. Лимит зала на дату
		maxCount, err := uc.capacityRepo.GetCapacity(txCtx, candidate.HallID, candidate.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get capacity: %v", err)
			return fmt.Errorf("%w: failed to get capacity: %w", ErrInternal, err)
		}

		// 3.4. Бронирования зала на дату с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.ListByHallAndDate(txCtx, candidate.HallID, candidate.Date, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 3.5. Проверка переходов и лимита
		decision, err := turnover.Evaluate(turnover.Input{
			Config:    cfg,
			DayType:   dayType,
			MaxCount:  maxCount,
			Existing:  existing,
			Candidate: candidate,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: facility=%d config cannot be evaluated: %v", hall.FacilityID, err)
			return fmt.Errorf("%w: evaluate: %v", ErrInternal, err)
		}
		uc.record(candidate.SlotType, decision.Code())

		if !decision.Allowed {
			uc.logger.Warn("CreateBooking: rejected hall=%d, date=%s, slot=%s: %v",
				candidate.HallID, candidate.Date.Format(domain.DateFormat), candidate.SlotType, decision.Reason)
			return decision.Reason
		}

		// 3.6. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, candidate)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyBooked) {
				uc.logger.Warn("CreateBooking: unique index rejected hall=%d, date=%s, slot=%s",
					candidate.HallID, candidate.Date.Format(domain.DateFormat), candidate.SlotType)
				return fmt.Errorf("%w: %s", turnover.ErrAlreadyBooked, candidate.SlotType)
			}
			if errors.Is(err, bookingRepo.ErrHallNotFound) {
				return ErrHallNotFound
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.publisher.Publish(events.Event{
		Type:       events.BookingCreated,
		FacilityID: result.FacilityID,
		HallID:     result.HallID,
		Date:       result.Date,
		Booking:    result,
	})

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return fromDomain(result), nil
}

// mapTxError оставляет отказы проверки и известные ошибки как есть,
// исчерпание повторов превращает в ErrConcurrentModification
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case turnover.IsRejection(err), errors.Is(err, ErrHallNotFound):
		return err
	case errors.Is(err, txmanager.ErrTxRetriesExhausted):
		uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
		return fmt.Errorf("%w: %v", ErrConcurrentModification, err)
	case errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func (uc *UseCase) record(slotType domain.SlotType, result string) {
	if uc.recorder != nil {
		uc.recorder.IncBookingDecision(string(slotType), result)
	}
}
