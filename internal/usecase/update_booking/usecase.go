package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/booking"
	tableRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/events"
	bookingInput "github.com/m04kA/SMC-TableBooking/internal/usecase/booking_input"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo BookingRepository
	tableRepo   TableRepository
	txManager   TransactionManager
	cache       CacheInvalidator // nil - кэш отключён
	publisher   EventPublisher
	validator   *bookingInput.Validator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tableRepo TableRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		tableRepo:   tableRepo,
		txManager:   txManager,
		cache:       cache,
		publisher:   publisher,
		validator:   bookingInput.NewValidator(),
		logger:      logger,
	}
}

// Execute выполняет use case изменения бронирования.
// Не переданные поля сохраняют текущие значения, итог проверяется так же, как при создании.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, actor=%d role=%s", req.ID, req.Actor.UserID, req.Actor.Role)

	var previous, result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Текущее состояние и права
		current, err := uc.bookingRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.ID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if req.Actor.Role.IsCustomer() && !current.IsOwnedBy(req.Actor.UserID) {
			uc.logger.Warn("UpdateBooking: access denied for user=%d to booking id=%d", req.Actor.UserID, req.ID)
			return ErrAccessDenied
		}

		// 2. Наложение изменений и валидация
		input, err := mergeInput(current, req)
		if err != nil {
			uc.logger.Warn("UpdateBooking: booking id=%d rejected: %v", req.ID, err)
			return err
		}

		if err := uc.validator.Validate(input); err != nil {
			uc.logger.Warn("UpdateBooking: validation failed for booking id=%d: %v", req.ID, err)
			return err
		}

		// 3. Стол должен быть активен и вмещать гостей
		table, err := uc.tableRepo.GetByID(txCtx, input.TableID)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				uc.logger.Warn("UpdateBooking: table id=%d not found", input.TableID)
				return ErrTableNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get table id=%d: %v", input.TableID, err)
			return fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
		}

		if err := bookingInput.CheckTable(table, input.GuestCount); err != nil {
			uc.logger.Warn("UpdateBooking: table id=%d rejected: %v", input.TableID, err)
			return err
		}

		// 4. Сохранение и повторное чтение с данными стола и пользователя
		if err := uc.bookingRepo.Update(txCtx, input.Booking(req.ID)); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d disappeared during update", req.ID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, req.ID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to read updated booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to read updated booking: %v", ErrInternal, err)
		}

		previous, result = current, updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. Сброс кэша старой и новой даты и событие (изменение уже сохранено, ошибки только логируются)
	if uc.cache != nil {
		uc.invalidate(ctx, previous)
		if !previous.Start.SameDay(result.Start) {
			uc.invalidate(ctx, result)
		}
	}

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.TypeBookingUpdated, result, req.Actor.UserID)); err != nil {
		uc.logger.Warn("UpdateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", result.ID)

	return &Response{Booking: result}, nil
}

func (uc *UseCase) invalidate(ctx context.Context, booking *domain.Booking) {
	date := booking.Start.Time()
	if err := uc.cache.Invalidate(ctx, date); err != nil {
		uc.logger.Warn("UpdateBooking: failed to invalidate availability cache for %s: %v",
			date.Format(domain.DateFormat), err)
	}
}
