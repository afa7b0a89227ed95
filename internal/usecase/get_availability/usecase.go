package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBooking/internal/infra/storage/booking"
)

// UseCase use case для расчёта доступности столов на дату
type UseCase struct {
	tableRepo    TableRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	cache        AvailabilityCache // nil - кэш отключён
	recorder     SlotsRecorder     // nil - метрики отключены
	window       domain.OpeningWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tableRepo TableRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	cache AvailabilityCache,
	recorder SlotsRecorder,
	window domain.OpeningWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		tableRepo:    tableRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		cache:        cache,
		recorder:     recorder,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Определяем дату (по умолчанию - сегодня)
	date := dateOnly(uc.timeProvider.Now())
	if req != nil && req.Date != nil {
		date = dateOnly(*req.Date)
	}

	uc.logger.Info("GetAvailability: date=%s", date.Format(domain.DateFormat))

	// 2. Пробуем кэш и запоминаем поколение до чтения из БД
	var (
		version   int64
		cacheable bool
	)
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, date)
		switch {
		case err != nil:
			uc.logger.Warn("GetAvailability: cache get failed for date=%s: %v", date.Format(domain.DateFormat), err)
		case ok:
			uc.logger.Info("GetAvailability: cache hit for date=%s", date.Format(domain.DateFormat))
			return &Response{Date: date, Tables: cached}, nil
		}

		version, err = uc.cache.Version(ctx, date)
		if err != nil {
			uc.logger.Warn("GetAvailability: cache version failed for date=%s: %v", date.Format(domain.DateFormat), err)
		} else {
			cacheable = true
		}
	}

	// 3. Столы и бронирования на дату читаем из одного снимка
	var (
		tables   []*domain.Table
		bookings []*domain.Booking
	)
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		tables, err = uc.tableRepo.ListActive(txCtx)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list tables: %v", err)
			return fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
		}

		bookings, err = uc.bookingRepo.ListByDate(txCtx, date)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidTimestamp) {
				uc.logger.Error("GetAvailability: stored booking has invalid timestamp, date=%s: %v",
					date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: %v", ErrInvalidBookingData, err)
			}
			uc.logger.Error("GetAvailability: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidBookingData) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("GetAvailability: read transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Считаем слоты
	resp := &Response{
		Date:   date,
		Tables: calculateAvailability(date, tables, bookings, uc.window),
	}

	if uc.recorder != nil {
		uc.recorder.ObserveAvailabilitySlots(resp.SlotsCount())
	}

	// 5. Сохраняем в кэш, если дату не сбросили во время расчёта (ошибка кэша не влияет на ответ)
	if cacheable {
		stored, err := uc.cache.SetIfVersion(ctx, date, version, resp.Tables)
		switch {
		case err != nil:
			uc.logger.Warn("GetAvailability: cache set failed for date=%s: %v", date.Format(domain.DateFormat), err)
		case !stored:
			uc.logger.Info("GetAvailability: date=%s changed during calculation, result not cached",
				date.Format(domain.DateFormat))
		}
	}

	uc.logger.Info("GetAvailability: %d tables, %d bookings, %d slots for date=%s",
		len(tables), len(bookings), resp.SlotsCount(), date.Format(domain.DateFormat))

	return resp, nil
}
