package events

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// Типы событий бронирований
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingUpdated   = "booking.updated"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingDeleted   = "booking.deleted"
)

// BookingEvent событие об изменении бронирования
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	BookingID  int64     `json:"bookingId"`
	UserID     int64     `json:"userId"`
	TableID    int64     `json:"tableId"`
	GuestCount int       `json:"guestCount"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Status     string    `json:"status"`
	ActorID    int64     `json:"actorId"`
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(eventType string, booking *domain.Booking, actorID int64) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		TableID:    booking.TableID,
		GuestCount: booking.GuestCount,
		Start:      booking.Start.String(),
		End:        booking.End.String(),
		Status:     string(booking.Status),
		ActorID:    actorID,
	}
}
