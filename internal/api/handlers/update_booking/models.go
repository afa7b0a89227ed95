package update_booking

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// UpdateBookingRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateBookingRequest struct {
	UserID     *int64  `json:"userId,omitempty"` // учитывается только для персонала
	TableID    *int64  `json:"tableId,omitempty"`
	GuestCount *int    `json:"guestCount,omitempty"`
	Start      *string `json:"start,omitempty"`   // "2025-10-12T18:00:00"
	EndTime    *string `json:"endTime,omitempty"` // "2025-10-12T20:00:00"
	Status     *string `json:"status,omitempty"`  // пустая строка - booked
	Note       *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(id int64, actor domain.Actor) (*updateBooking.Request, error) {
	start, err := parseOptional(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := parseOptional(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		ID:         id,
		Actor:      actor,
		UserID:     r.UserID,
		TableID:    r.TableID,
		GuestCount: r.GuestCount,
		Start:      start,
		End:        end,
		Status:     r.Status,
		Note:       r.Note,
	}, nil
}

func parseOptional(value *string) (*types.DateTime, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := types.ParseDateTime(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
