package create_booking

import (
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID     *int64 `json:"userId,omitempty"` // учитывается только для персонала
	TableID    int64  `json:"tableId"`
	GuestCount int    `json:"guestCount"`
	Start      string `json:"start"`   // "2025-10-12T18:00:00"
	EndTime    string `json:"endTime"` // "2025-10-12T20:00:00"
	Status     string `json:"status,omitempty"`
	Note       string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	start, err := types.ParseDateTime(r.Start)
	if err != nil {
		return nil, err
	}

	end, err := types.ParseDateTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
