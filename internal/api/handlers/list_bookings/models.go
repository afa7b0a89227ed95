package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
	"github.com/m04kA/SMC-TableBooking/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров date, tableId и status
func ToServiceRequest(actor domain.Actor, query url.Values) (*models.GetBookingsRequest, error) {
	req := &models.GetBookingsRequest{Actor: actor}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}

	if tableIDStr := query.Get("tableId"); tableIDStr != "" {
		tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
		if err != nil || tableID <= 0 {
			return nil, fmt.Errorf("tableId: invalid value %q", tableIDStr)
		}
		req.TableID = &tableID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
