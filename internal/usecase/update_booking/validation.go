package update_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	bookingInput "github.com/m04kA/SMC-TableBooking/internal/usecase/booking_input"
)

// mergeInput накладывает изменения на текущее бронирование и применяет права actor.
// Клиент не может передать бронирование другому пользователю и поставить статус blocked.
func mergeInput(current *domain.Booking, req *Request) (bookingInput.Input, error) {
	input := bookingInput.Input{
		UserID:     current.UserID,
		TableID:    current.TableID,
		GuestCount: current.GuestCount,
		Status:     string(current.Status),
		Note:       current.Note,
		Start:      current.Start,
		End:        current.End,
	}

	if req.TableID != nil {
		input.TableID = *req.TableID
	}
	if req.GuestCount != nil {
		input.GuestCount = *req.GuestCount
	}
	if req.Start != nil {
		input.Start = *req.Start
	}
	if req.End != nil {
		input.End = *req.End
	}
	if req.Note != nil {
		input.Note = strings.TrimSpace(*req.Note)
	}
	if req.Status != nil {
		input.Status = strings.TrimSpace(*req.Status)
		if input.Status == "" {
			input.Status = string(domain.DefaultBookingStatus)
		}
	}

	if !req.Actor.Role.IsCustomer() {
		if req.UserID != nil {
			input.UserID = *req.UserID
		}
		return input, nil
	}

	input.UserID = req.Actor.UserID
	if domain.BookingStatus(input.Status) == domain.StatusBlocked && current.Status != domain.StatusBlocked {
		return input, fmt.Errorf("%w: status %s is reserved for staff", ErrAccessDenied, domain.StatusBlocked)
	}

	return input, nil
}
