package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// BookingStatus статус бронирования. Свободный текст: хранится как есть,
// известные значения перечислены ниже.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusBlocked   BookingStatus = "blocked"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking бронирование стола
type Booking struct {
	ID         int64
	UserID     int64
	TableID    int64
	GuestCount int
	Start      types.DateTime
	End        types.DateTime // не включительно
	Status     BookingStatus
	Note       string

	// Денормализованные данные из JOIN (могут отсутствовать)
	TableName *string
	UserEmail *string
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если бронирование ещё можно отменить
func (b *Booking) CanBeCancelled() bool {
	return !b.IsCancelled()
}

// IsOwnedBy возвращает true, если бронирование принадлежит пользователю
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	UserID  *int64         // Только бронирования пользователя (для клиентов)
	TableID *int64         // Фильтр по столу
	Date    *time.Time     // Бронирования, начинающиеся в этот день
	Status  *BookingStatus // Фильтр по статусу
}
