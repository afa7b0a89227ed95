package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	bookingInput "github.com/m04kA/SMC-TableBooking/internal/usecase/booking_input"
)

// resolveInput применяет права actor: клиент бронирует только на себя и только со статусом booked
func resolveInput(req *Request) bookingInput.Input {
	input := bookingInput.Input{
		UserID:     req.Actor.UserID,
		TableID:    req.TableID,
		GuestCount: req.GuestCount,
		Status:     string(domain.DefaultBookingStatus),
		Note:       strings.TrimSpace(req.Note),
		Start:      req.Start,
		End:        req.End,
	}

	if req.Actor.Role.IsCustomer() {
		return input
	}

	if req.UserID != nil {
		input.UserID = *req.UserID
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		input.Status = status
	}

	return input
}
