package domain

import "github.com/m04kA/SMC-TableBooking/pkg/types"

// Часы работы по умолчанию
const (
	DefaultOpeningTime types.TimeString = "17:00"
	DefaultClosingTime types.TimeString = "22:00"
)

// DefaultBookingStatus статус, если при создании он не указан
const DefaultBookingStatus = StatusBooked

// Бизнес-ограничения
const (
	MinGuestCount = 1
	MaxGuestCount = 50
	MaxNoteLength = 500
)

// Форматы даты и времени
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = types.DateTimeFormat
)

// Role роль пользователя, переданная шлюзом
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// IsCustomer возвращает true для клиента ресторана.
// Клиенты видят и меняют только свои бронирования.
func (r Role) IsCustomer() bool {
	return r == RoleUser
}

// Actor пользователь, выполняющий запрос
type Actor struct {
	UserID int64
	Role   Role
}

// KnownStatuses допустимые статусы при создании бронирования
var KnownStatuses = []BookingStatus{
	StatusBooked,
	StatusBlocked,
	StatusCancelled,
}
