package update_booking

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

// UseCase use case для редактирования бронирования
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

// Execute выполняет use case редактирования бронирования.
// Само бронирование не участвует в проверке: оно исключается из списка существующих
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d, hall=%d, date=%s, slot=%s, time=%v",
		req.ID, req.HallID, req.Date.Format(domain.DateFormat), req.SlotType, ptr.Deref(req.CeremonyTime, ""))

	// 1. Валидация входных данных
	if req.ID <= 0 {
		uc.logger.Warn("UpdateBooking: invalid id=%d", req.ID)
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	candidate := req.toDomain()
	if err := candidate.Validate(); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем зал, в который переносится бронирование
	hall, err := uc.hallRepo.GetHall(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrHallNotFound) {
			uc.logger.Warn("UpdateBooking: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}
	if !hall.IsActive {
		uc.logger.Warn("UpdateBooking: hall id=%d is inactive", req.HallID)
		return nil, ErrHallNotFound
	}
	candidate.FacilityID = hall.FacilityID

	var (
		result *domain.Booking
		moved  bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Текущая версия бронирования (FOR UPDATE)
		current, err := uc.bookingRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.ID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		moved = current.HallID != candidate.HallID || !sameDay(current, candidate)

		// 3.2. Состояние целевого зала на целевую дату
		cfg, err := uc.configRepo.GetTurnoverConfig(txCtx, hall.FacilityID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get turnover config: %v", err)
			return fmt.Errorf("%w: failed to get turnover config: %w", ErrInternal, err)
		}

		dayType, err := uc.dayTypeRepo.GetDayType(txCtx, candidate.Date)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get day type: %v", err)
			return fmt.Errorf("%w: failed to get day type: %w", ErrInternal, err)
		}

		maxCount, err := uc.capacityRepo.GetCapacity(txCtx, candidate.HallID, candidate.Date)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get capacity: %v", err)
			return fmt.Errorf("%w: failed to get capacity: %w", ErrInternal, err)
		}

		existing, err := uc.bookingRepo.ListByHallAndDate(txCtx, candidate.HallID, candidate.Date, &candidate.ID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 3.3. Проверка переходов и лимита
		decision, err := turnover.Evaluate(turnover.Input{
			Config:    cfg,
			DayType:   dayType,
			MaxCount:  maxCount,
			Existing:  existing,
			Candidate: candidate,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: facility=%d config cannot be evaluated: %v", hall.FacilityID, err)
			return fmt.Errorf("%w: evaluate: %v", ErrInternal, err)
		}
		uc.record(candidate.SlotType, decision.Code())

		if !decision.Allowed {
			uc.logger.Warn("UpdateBooking: rejected id=%d: %v", req.ID, decision.Reason)
			return decision.Reason
		}

		// 3.4. Сохраняем
		candidate.CreatedAt = current.CreatedAt
		updated, err := uc.bookingRepo.Update(txCtx, candidate)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrAlreadyBooked):
				return fmt.Errorf("%w: %s", turnover.ErrAlreadyBooked, candidate.SlotType)
			case errors.Is(err, bookingRepo.ErrHallNotFound):
				return ErrHallNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.publisher.Publish(events.Event{
		Type:       events.BookingUpdated,
		FacilityID: result.FacilityID,
		HallID:     result.HallID,
		Date:       result.Date,
		Booking:    result,
	})

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d (moved=%t)", result.ID, moved)
	return fromDomain(result, moved), nil
}

func (uc *UseCase) mapTxError(err error) error {
	switch {
	case turnover.IsRejection(err), errors.Is(err, ErrHallNotFound), errors.Is(err, ErrBookingNotFound):
		return err
	case errors.Is(err, txmanager.ErrTxRetriesExhausted):
		uc.logger.Warn("UpdateBooking: serialization retries exhausted: %v", err)
		return fmt.Errorf("%w: %v", ErrConcurrentModification, err)
	case errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("UpdateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func (uc *UseCase) record(slotType domain.SlotType, result string) {
	if uc.recorder != nil {
		uc.recorder.IncBookingDecision(string(slotType), result)
	}
}

func sameDay(a, b *domain.Booking) bool {
	return a.Date.Format(domain.DateFormat) == b.Date.Format(domain.DateFormat)
}
