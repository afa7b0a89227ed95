package get_availability

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
)

// TableAvailabilityResponse доступность одного стола
type TableAvailabilityResponse struct {
	TableID   int64          `json:"tableId"`
	TableName string         `json:"tableName"`
	Capacity  int            `json:"capacity"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse временной слот. Данные бронирования заполнены только у занятых слотов.
type SlotResponse struct {
	Type      string  `json:"type"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	BookingID *int64  `json:"bookingId,omitempty"`
	UserID    *int64  `json:"userId,omitempty"`
	UserEmail *string `json:"userEmail,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// ToUseCaseRequest разбирает query параметр date. Пустая строка означает сегодня.
func ToUseCaseRequest(dateStr string) (*getAvailability.Request, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return &getAvailability.Request{}, nil
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{Date: &date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) []TableAvailabilityResponse {
	result := make([]TableAvailabilityResponse, len(resp.Tables))
	for i, table := range resp.Tables {
		slots := make([]SlotResponse, len(table.Slots))
		for j, slot := range table.Slots {
			slots[j] = SlotResponse{
				Type:      string(slot.Type),
				Start:     slot.Start.String(),
				End:       slot.End.String(),
				BookingID: slot.BookingID,
				UserID:    slot.UserID,
				UserEmail: slot.UserEmail,
			}
			if slot.Status != nil {
				status := string(*slot.Status)
				slots[j].Status = &status
			}
		}

		result[i] = TableAvailabilityResponse{
			TableID:   table.TableID,
			TableName: table.TableName,
			Capacity:  table.Capacity,
			Date:      table.Date.Format(domain.DateFormat),
			Slots:     slots,
		}
	}
	return result
}
