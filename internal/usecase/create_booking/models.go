package create_booking

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor      domain.Actor   // Кто создаёт бронирование
	UserID     *int64         // Для кого (учитывается только для персонала)
	TableID    int64          // ID стола
	GuestCount int            // Количество гостей
	Start      types.DateTime // Начало
	End        types.DateTime // Конец (не включительно)
	Status     string         // Статус (учитывается только для персонала), по умолчанию booked
	Note       string         // Комментарий (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
