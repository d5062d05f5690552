package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/service/capacity/models"
	"github.com/m04kA/SMC-HallBookingService/pkg/txmanager"
)

// Service сервис дневных лимитов залов
type Service struct {
	capacityRepo CapacityRepository
	bookingRepo  BookingCounter
	hallRepo     HallRepository
	txManager    TransactionManager
	publisher    EventPublisher
	logger       Logger
}

// NewService создает новый экземпляр сервиса лимитов
func NewService(
	capacityRepo CapacityRepository,
	bookingRepo BookingCounter,
	hallRepo HallRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		capacityRepo: capacityRepo,
		bookingRepo:  bookingRepo,
		hallRepo:     hallRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

// ListCapacities получает лимиты зала за период (обе границы включительно)
func (s *Service) ListCapacities(ctx context.Context, hallID int64, from, to time.Time) (*models.CapacityListResponse, error) {
	s.logger.Info("ListCapacities: hall=%d, from=%s, to=%s",
		hallID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if from.After(to) {
		s.logger.Warn("ListCapacities: from is after to")
		return nil, ErrInvalidTimeRange
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > domain.MaxCapacityRange {
		s.logger.Warn("ListCapacities: range of %d days exceeds %d", days, domain.MaxCapacityRange)
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidTimeRange, domain.MaxCapacityRange)
	}

	if _, err := s.getHall(ctx, "ListCapacities", hallID); err != nil {
		return nil, err
	}

	// Чтение в read-only транзакции: список за период согласован по одному снимку
	var capacities []*domain.DailyCapacity
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		capacities, err = s.capacityRepo.ListCapacities(txCtx, hallID, from, to)
		return err
	})
	if err != nil {
		s.logger.Error("ListCapacities: repository error for hall=%d: %v", hallID, err)
		return nil, fmt.Errorf("%w: ListCapacities - repository error: %v", ErrInternal, err)
	}

	resp := &models.CapacityListResponse{
		HallID:     hallID,
		From:       from.Format(domain.DateFormat),
		To:         to.Format(domain.DateFormat),
		Capacities: make([]models.CapacityResponse, 0, len(capacities)),
	}
	for _, c := range capacities {
		resp.Capacities = append(resp.Capacities, models.FromDomainCapacity(c))
	}
	return resp, nil
}

// SetCapacity устанавливает или снимает лимит зала на дату.
// Нельзя снять лимит или опустить его ниже числа уже существующих бронирований
func (s *Service) SetCapacity(ctx context.Context, req *models.SetCapacityRequest) (*models.CapacityResponse, error) {
	s.logger.Info("SetCapacity: hall=%d, date=%s, maxCount=%v",
		req.HallID, req.Date.Format(domain.DateFormat), formatMax(req.MaxCount))

	// 1. Валидация диапазона
	if req.MaxCount != nil && (*req.MaxCount < domain.MinDailyCapacity || *req.MaxCount > domain.MaxDailyCapacity) {
		s.logger.Warn("SetCapacity: maxCount=%d out of range", *req.MaxCount)
		return nil, fmt.Errorf("%w: maxCount must be between %d and %d",
			ErrInvalidInput, domain.MinDailyCapacity, domain.MaxDailyCapacity)
	}

	hall, err := s.getHall(ctx, "SetCapacity", req.HallID)
	if err != nil {
		return nil, err
	}

	// 2. Сравнение с бронированиями и запись в одной транзакции,
	// чтобы параллельное создание бронирования не проскочило между ними
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.CountByHallAndDate(txCtx, req.HallID, req.Date)
		if err != nil {
			s.logger.Error("SetCapacity: failed to count bookings: %v", err)
			return fmt.Errorf("%w: SetCapacity - count bookings: %w", ErrInternal, err)
		}

		if req.MaxCount == nil {
			if current > 0 {
				s.logger.Warn("SetCapacity: cannot clear, %d bookings exist", current)
				return &BookingsExistError{Current: current}
			}
			if err := s.capacityRepo.ClearCapacity(txCtx, req.HallID, req.Date); err != nil {
				s.logger.Error("SetCapacity: failed to clear capacity: %v", err)
				return fmt.Errorf("%w: SetCapacity - clear: %w", ErrInternal, err)
			}
			return nil
		}

		if *req.MaxCount < current {
			s.logger.Warn("SetCapacity: cannot reduce to %d, %d bookings exist", *req.MaxCount, current)
			return &BookingsExistError{Current: current, MaxCount: req.MaxCount}
		}
		if err := s.capacityRepo.SetCapacity(txCtx, req.HallID, req.Date, *req.MaxCount); err != nil {
			s.logger.Error("SetCapacity: failed to set capacity: %v", err)
			return fmt.Errorf("%w: SetCapacity - set: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrHasBookings):
			return nil, err
		case errors.Is(err, txmanager.ErrTxRetriesExhausted):
			s.logger.Warn("SetCapacity: serialization retries exhausted: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrConcurrentModification, err)
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			s.logger.Error("SetCapacity: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: SetCapacity - transaction: %w", ErrInternal, err)
		}
	}

	s.publisher.Publish(events.Event{
		Type:       events.CapacityChanged,
		FacilityID: hall.FacilityID,
		HallID:     req.HallID,
		Date:       req.Date,
	})

	s.logger.Info("SetCapacity: hall=%d, date=%s set to %s",
		req.HallID, req.Date.Format(domain.DateFormat), formatMax(req.MaxCount))
	return &models.CapacityResponse{
		HallID:   req.HallID,
		Date:     req.Date.Format(domain.DateFormat),
		MaxCount: req.MaxCount,
	}, nil
}

func (s *Service) getHall(ctx context.Context, op string, hallID int64) (*domain.Hall, error) {
	hall, err := s.hallRepo.GetHall(ctx, hallID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrHallNotFound) {
			s.logger.Warn("%s: hall id=%d not found", op, hallID)
			return nil, ErrHallNotFound
		}
		s.logger.Error("%s: failed to get hall id=%d: %v", op, hallID, err)
		return nil, fmt.Errorf("%w: %s - get hall: %v", ErrInternal, op, err)
	}
	return hall, nil
}

func formatMax(maxCount *int) string {
	if maxCount == nil {
		return "unset"
	}
	return fmt.Sprintf("%d", *maxCount)
}
