package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/events"
	"github.com/m04kA/SMC-TableBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	cache       CacheInvalidator // nil - кэш отключён
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
	}
}

// List получает список бронирований.
// Клиент видит только свои бронирования, персонал и администратор - все.
func (s *Service) List(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for user=%d role=%s", req.Actor.UserID, req.Actor.Role)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for user=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID.
// Чужое бронирование для клиента выглядит как несуществующее.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getVisible(ctx, "GetByID", id, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel переводит бронирование в статус cancelled.
// Клиент может отменить только своё бронирование.
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, actor.UserID)

	booking, err := s.getOwned(ctx, "Cancel", id, actor)
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	s.afterChange(ctx, events.TypeBookingCancelled, booking, actor)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// Delete удаляет бронирование.
// Клиент может удалить только своё бронирование.
func (s *Service) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", id, actor.UserID)

	booking, err := s.getOwned(ctx, "Delete", id, actor)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found during delete", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.afterChange(ctx, events.TypeBookingDeleted, booking, actor)

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// Вспомогательные методы

// getVisible загружает бронирование, скрывая чужие от клиента
func (s *Service) getVisible(ctx context.Context, op string, id int64, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if actor.Role.IsCustomer() && !booking.IsOwnedBy(actor.UserID) {
		s.logger.Warn("%s: booking id=%d is hidden from user=%d", op, id, actor.UserID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

// getOwned загружает бронирование для изменения, проверяя владельца для клиента
func (s *Service) getOwned(ctx context.Context, op string, id int64, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if actor.Role.IsCustomer() && !booking.IsOwnedBy(actor.UserID) {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// afterChange сбрасывает кэш доступности и публикует событие.
// Изменение уже зафиксировано, поэтому ошибки только логируются.
func (s *Service) afterChange(ctx context.Context, eventType string, booking *domain.Booking, actor domain.Actor) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, booking.Start.Time()); err != nil {
			s.logger.Warn("%s: failed to invalidate availability cache for booking id=%d: %v", eventType, booking.ID, err)
		}
	}

	if err := s.publisher.Publish(ctx, events.NewBookingEvent(eventType, booking, actor.UserID)); err != nil {
		s.logger.Warn("%s: failed to publish event for booking id=%d: %v", eventType, booking.ID, err)
	}
}
