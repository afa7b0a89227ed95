package booking_input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

var (
	// ErrInvalidInput поля бронирования не проходят проверку
	ErrInvalidInput = errors.New("booking_input: invalid input data")

	// ErrInvalidTimeRange конец не позже начала или бронирование переходит через полночь
	ErrInvalidTimeRange = errors.New("booking_input: invalid time range")

	// ErrTableNotFound стол не найден или неактивен
	ErrTableNotFound = errors.New("booking_input: table not found")

	// ErrGuestCountExceedsCapacity гостей больше, чем мест за столом
	ErrGuestCountExceedsCapacity = errors.New("booking_input: guest count exceeds table capacity")
)

// Input итоговые данные бронирования после применения прав actor.
// Границы в тегах совпадают с domain.MinGuestCount, domain.MaxGuestCount и domain.MaxNoteLength.
type Input struct {
	UserID     int64  `validate:"gt=0"`
	TableID    int64  `validate:"gt=0"`
	GuestCount int    `validate:"min=1,max=50"`
	Status     string `validate:"required,oneof=booked blocked cancelled"`
	Note       string `validate:"max=500"`
	Start      types.DateTime
	End        types.DateTime
}

// Booking собирает доменное бронирование из проверенных данных
func (in Input) Booking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		UserID:     in.UserID,
		TableID:    in.TableID,
		GuestCount: in.GuestCount,
		Start:      in.Start,
		End:        in.End,
		Status:     domain.BookingStatus(in.Status),
		Note:       in.Note,
	}
}

// Validator проверка бронирования, общая для создания и изменения
type Validator struct {
	validate *validator.Validate
}

// NewValidator создает валидатор
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate проверяет поля по тегам и временной интервал
func (v *Validator) Validate(input Input) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describe(validationErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.Start.IsZero() || input.End.IsZero() {
		return fmt.Errorf("%w: start and endTime are required", ErrInvalidInput)
	}

	if !input.Start.Before(input.End) {
		return fmt.Errorf("%w: start must be before endTime", ErrInvalidTimeRange)
	}

	if !input.Start.SameDay(input.End) {
		return fmt.Errorf("%w: booking must start and end on the same day", ErrInvalidTimeRange)
	}

	return nil
}

// CheckTable проверяет, что стол активен и вмещает гостей
func CheckTable(table *domain.Table, guestCount int) error {
	if !table.IsActive {
		return fmt.Errorf("%w: table id=%d is inactive", ErrTableNotFound, table.ID)
	}
	if !table.Fits(guestCount) {
		return fmt.Errorf("%w: capacity is %d", ErrGuestCountExceedsCapacity, table.Capacity)
	}
	return nil
}

// describe собирает ошибки валидатора в одну строку
func describe(validationErrs validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be positive", fe.Field()))
		case "min", "max":
			messages = append(messages, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}
