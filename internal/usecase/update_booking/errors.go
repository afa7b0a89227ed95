package update_booking

import (
	"errors"

	bookingInput "github.com/m04kA/SMC-TableBooking/internal/usecase/booking_input"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда клиент меняет чужое бронирование или ставит статус персонала
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrInvalidInput возвращается при некорректных данных после наложения изменений
	ErrInvalidInput = bookingInput.ErrInvalidInput

	// ErrInvalidTimeRange возвращается, когда конец не позже начала или бронирование переходит через полночь
	ErrInvalidTimeRange = bookingInput.ErrInvalidTimeRange

	// ErrTableNotFound возвращается, когда стол не найден или неактивен
	ErrTableNotFound = bookingInput.ErrTableNotFound

	// ErrGuestCountExceedsCapacity возвращается, когда гостей больше, чем мест за столом
	ErrGuestCountExceedsCapacity = bookingInput.ErrGuestCountExceedsCapacity

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
