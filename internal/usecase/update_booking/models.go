package update_booking

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Request модель запроса на изменение бронирования.
// nil поле означает "оставить как есть".
type Request struct {
	ID         int64           // ID бронирования
	Actor      domain.Actor    // Кто изменяет
	UserID     *int64          // Для кого (учитывается только для персонала)
	TableID    *int64          // ID стола
	GuestCount *int            // Количество гостей
	Start      *types.DateTime // Начало
	End        *types.DateTime // Конец (не включительно)
	Status     *string         // Статус, пустая строка превращается в booked
	Note       *string         // Комментарий
}

// Response модель ответа с изменённым бронированием
type Response struct {
	Booking *domain.Booking
}
