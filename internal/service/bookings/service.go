package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HallBookingService/internal/domain"
	"github.com/m04kA/SMC-HallBookingService/internal/events"
	bookingRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-HallBookingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-HallBookingService/internal/service/bookings/models"
)

// Service сервис чтения и удаления бронирований.
// Создание и редактирование проходят через usecase с проверкой переходов.
type Service struct {
	bookingRepo BookingRepository
	hallRepo    HallRepository
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	hallRepo HallRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		hallRepo:    hallRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListHallBookings получает бронирования зала за период (или на одну дату)
func (s *Service) ListHallBookings(ctx context.Context, req *models.ListHallBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListHallBookings: hall=%d", req.HallID)

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		s.logger.Warn("ListHallBookings: start %s after end %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListHallBookings: invalid filter for hall=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.hallRepo.GetHall(ctx, req.HallID); err != nil {
		if errors.Is(err, facilityRepo.ErrHallNotFound) {
			s.logger.Warn("ListHallBookings: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		s.logger.Error("ListHallBookings: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: ListHallBookings - get hall: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.ListByHall(ctx, filter)
	if err != nil {
		s.logger.Error("ListHallBookings: repository error for hall=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: ListHallBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListHallBookings: fetched %d bookings for hall=%d", len(bookings), req.HallID)
	return models.FromDomainBookingList(bookings), nil
}

// Delete удаляет бронирование. Проверки переходов не нужны: удаление только освобождает зал
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: failed to get booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - get booking: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d already deleted", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publisher.Publish(events.Event{
		Type:       events.BookingDeleted,
		FacilityID: booking.FacilityID,
		HallID:     booking.HallID,
		Date:       booking.Date,
		Booking:    booking,
	})

	s.logger.Info("Delete: booking id=%d deleted (hall=%d, date=%s, slot=%s)",
		id, booking.HallID, booking.Date.Format(domain.DateFormat), booking.SlotType)
	return nil
}
