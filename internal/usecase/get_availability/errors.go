package get_availability

import "errors"

var (
	// ErrInvalidBookingData возвращается, когда время сохранённого бронирования не удаётся разобрать
	ErrInvalidBookingData = errors.New("invalid stored booking data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
