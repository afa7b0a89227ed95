package get_availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/ptr"
)

// calculateAvailability строит слоты для каждого стола на дату.
// Чистая функция: без I/O, логирования и общего состояния.
// Бронирования других столов и столы вне списка tables игнорируются.
func calculateAvailability(
	date time.Time,
	tables []*domain.Table,
	bookings []*domain.Booking,
	window domain.OpeningWindow,
) []domain.TableAvailability {
	byTable := groupByTable(bookings)

	result := make([]domain.TableAvailability, 0, len(tables))
	for _, table := range tables {
		result = append(result, domain.TableAvailability{
			TableID:   table.ID,
			TableName: table.Name,
			Capacity:  table.Capacity,
			Date:      date,
			Slots:     buildTableSlots(byTable[table.ID], date, window),
		})
	}

	return result
}

// buildTableSlots проходит по бронированиям стола в порядке начала и заполняет окно работы
// чередованием свободных и занятых слотов.
//
// Бронирования не обрезаются по границам окна. Пересекающиеся бронирования не сливаются:
// каждое даёт свой занятый слот, а курсор двигается только вперёд.
//
// Пример (окно 17:00-22:00):
// - A 17:00-20:00, B 18:00-19:00 → booked A, booked B, available 20:00-22:00
// - 19:00-20:00 → available 17:00-19:00, booked 19:00-20:00, available 20:00-22:00
func buildTableSlots(bookings []*domain.Booking, date time.Time, window domain.OpeningWindow) []domain.Slot {
	sorted := make([]*domain.Booking, len(bookings))
	copy(sorted, bookings)

	// Стабильная сортировка: при равном начале сохраняется порядок из репозитория
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	dayStart, dayEnd := window.Bounds(date)
	cursor := dayStart

	slots := make([]domain.Slot, 0, 2*len(sorted)+1)
	for _, booking := range sorted {
		if booking.Start.After(cursor) {
			slots = append(slots, domain.Slot{
				Type:  domain.SlotAvailable,
				Start: cursor,
				End:   booking.Start,
			})
		}

		slots = append(slots, domain.Slot{
			Type:      domain.SlotBooked,
			Start:     booking.Start,
			End:       booking.End,
			BookingID: ptr.Ptr(booking.ID),
			UserID:    ptr.Ptr(booking.UserID),
			UserEmail: booking.UserEmail,
			Status:    ptr.Ptr(booking.Status),
		})

		if booking.End.After(cursor) {
			cursor = booking.End
		}
	}

	if cursor.Before(dayEnd) {
		slots = append(slots, domain.Slot{
			Type:  domain.SlotAvailable,
			Start: cursor,
			End:   dayEnd,
		})
	}

	return slots
}

// groupByTable раскладывает бронирования по столам, сохраняя исходный порядок
func groupByTable(bookings []*domain.Booking) map[int64][]*domain.Booking {
	byTable := make(map[int64][]*domain.Booking)
	for _, booking := range bookings {
		byTable[booking.TableID] = append(byTable[booking.TableID], booking)
	}
	return byTable
}

// dateOnly обнуляет время и зону, оставляя календарный день
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
