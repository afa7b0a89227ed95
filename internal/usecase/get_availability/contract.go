package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListActive(ctx context.Context) ([]*domain.Table, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListByDate возвращает все бронирования, начинающиеся в указанный день, отсортированные по началу
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// TransactionManager выполняет чтения в одной транзакции
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityCache кэш рассчитанной доступности по дате
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time) ([]domain.TableAvailability, bool, error)
	// Version поколение записи на дату, растёт при каждом сбросе
	Version(ctx context.Context, date time.Time) (int64, error)
	// SetIfVersion сохраняет расчёт, если поколение не изменилось. stored=false - расчёт устарел.
	SetIfVersion(ctx context.Context, date time.Time, version int64, availability []domain.TableAvailability) (bool, error)
}

// SlotsRecorder принимает количество слотов одного расчёта (метрики)
type SlotsRecorder interface {
	ObserveAvailabilitySlots(count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
