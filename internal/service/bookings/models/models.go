package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// ErrInvalidStatus возвращается при пустом статусе в фильтре
var ErrInvalidStatus = errors.New("invalid booking status")

// Request модели

// GetBookingsRequest запрос списка бронирований
type GetBookingsRequest struct {
	Actor   domain.Actor
	TableID *int64
	Date    *time.Time
	Status  *string
}

// ToDomainFilter конвертирует запрос в domain фильтр.
// Клиент (роль user) всегда видит только свои бронирования.
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TableID: r.TableID,
		Date:    r.Date,
	}

	if r.Actor.Role.IsCustomer() {
		userID := r.Actor.UserID
		filter.UserID = &userID
	}

	if r.Status != nil {
		if *r.Status == "" {
			return domain.BookingsFilter{}, ErrInvalidStatus
		}
		status := domain.BookingStatus(*r.Status)
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	TableID    int64   `json:"tableId"`
	GuestCount int     `json:"guestCount"`
	Start      string  `json:"start"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	Note       string  `json:"note"`
	TableName  *string `json:"tableName,omitempty"`
	UserEmail  *string `json:"userEmail,omitempty"`
}

// BookingListResponse список бронирований. В HTTP ответ уходит только массив Bookings.
type BookingListResponse struct {
	Bookings []BookingResponse
	Total    int
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		TableID:    b.TableID,
		GuestCount: b.GuestCount,
		Start:      b.Start.String(),
		EndTime:    b.End.String(),
		Status:     string(b.Status),
		Note:       b.Note,
		TableName:  b.TableName,
		UserEmail:  b.UserEmail,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = *FromDomainBooking(b)
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
