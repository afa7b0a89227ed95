package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

// SlotType тип временного слота
type SlotType string

const (
	SlotAvailable SlotType = "available"
	SlotBooked    SlotType = "booked"
)

// Slot непрерывный интервал времени одного стола, свободный или занятый.
// Для занятых слотов заполнены данные исходного бронирования.
type Slot struct {
	Type  SlotType
	Start types.DateTime
	End   types.DateTime

	BookingID *int64
	UserID    *int64
	UserEmail *string
	Status    *BookingStatus
}

// IsBooked возвращает true для занятого слота
func (s *Slot) IsBooked() bool {
	return s.Type == SlotBooked
}

// TableAvailability слоты одного стола на дату
type TableAvailability struct {
	TableID   int64
	TableName string
	Capacity  int
	Date      time.Time
	Slots     []Slot
}

// OpeningWindow ежедневные часы работы, одинаковые для всех столов и дат
type OpeningWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// DefaultOpeningWindow часы работы по умолчанию
func DefaultOpeningWindow() OpeningWindow {
	return OpeningWindow{Open: DefaultOpeningTime, Close: DefaultClosingTime}
}

// Bounds возвращает начало и конец окна в указанный день
func (w OpeningWindow) Bounds(date time.Time) (types.DateTime, types.DateTime) {
	return w.Open.On(date), w.Close.On(date)
}

// IsValid возвращает true, если открытие раньше закрытия
func (w OpeningWindow) IsValid() bool {
	return w.Open.IsBefore(w.Close)
}
