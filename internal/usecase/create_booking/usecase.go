package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	tableRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/table"
	"github.com/m04kA/SMC-TableBooking/internal/integrations/events"
	bookingInput "github.com/m04kA/SMC-TableBooking/internal/usecase/booking_input"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Пересечения с другими бронированиями не проверяются: занятые интервалы могут накладываться.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d role=%s, table=%d, guests=%d, start=%s, end=%s",
		req.Actor.UserID, req.Actor.Role, req.TableID, req.GuestCount, req.Start, req.End)

	// 1. Права и значения по умолчанию
	input := resolveInput(req)

	// 2. Валидация входных данных
	if err := uc.validator.Validate(input); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 3. Проверка стола, вставка и повторное чтение в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		table, err := uc.tableRepo.GetByID(txCtx, input.TableID)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				uc.logger.Warn("CreateBooking: table id=%d not found", input.TableID)
				return ErrTableNotFound
			}
			uc.logger.Error("CreateBooking: failed to get table id=%d: %v", input.TableID, err)
			return fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
		}

		if err := bookingInput.CheckTable(table, input.GuestCount); err != nil {
			uc.logger.Warn("CreateBooking: table id=%d rejected: %v", input.TableID, err)
			return err
		}

		id, err := uc.bookingRepo.Create(txCtx, input.Booking(0))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created, err := uc.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to read created booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to read created booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Сброс кэша и событие (бронирование уже сохранено, ошибки только логируются)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, result.Start.Time()); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate availability cache for %s: %v",
				result.Start.Time().Format(domain.DateFormat), err)
		}
	}

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.TypeBookingCreated, result, req.Actor.UserID)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{Booking: result}, nil
}
