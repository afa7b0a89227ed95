package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено (или скрыто от клиента)
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда клиент пытается изменить чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование уже отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
