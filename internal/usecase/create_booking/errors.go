package create_booking

import (
	"errors"

	bookingInput "github.com/m04kA/SMC-TableBooking/internal/usecase/booking_input"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = bookingInput.ErrInvalidInput

	// ErrInvalidTimeRange возвращается, когда конец не позже начала или бронирование переходит через полночь
	ErrInvalidTimeRange = bookingInput.ErrInvalidTimeRange

	// ErrTableNotFound возвращается, когда стол не найден или неактивен
	ErrTableNotFound = bookingInput.ErrTableNotFound

	// ErrGuestCountExceedsCapacity возвращается, когда гостей больше, чем мест за столом
	ErrGuestCountExceedsCapacity = bookingInput.ErrGuestCountExceedsCapacity

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
