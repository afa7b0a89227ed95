package get_availability

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	Date *time.Time // Дата без времени. nil - сегодня
}

// Response модель ответа: слоты по каждому активному столу
type Response struct {
	Date   time.Time
	Tables []domain.TableAvailability
}

// SlotsCount общее количество слотов по всем столам
func (r *Response) SlotsCount() int {
	count := 0
	for _, table := range r.Tables {
		count += len(table.Slots)
	}
	return count
}
