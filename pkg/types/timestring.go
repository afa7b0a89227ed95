package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается, если строка не в формате HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeStringLayout = "15:04"

// TimeString время суток в формате HH:MM без привязки к дате
type TimeString string

// NewTimeString создает TimeString из времени (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит и нормализует строку HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// Minutes возвращает количество минут с полуночи
func (ts TimeString) Minutes() int {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// IsBefore возвращает true, если ts раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если ts позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// On возвращает момент времени ts в указанный календарный день
func (ts TimeString) On(date time.Time) DateTime {
	minutes := ts.Minutes()
	y, m, d := date.Date()
	return NewDateTime(time.Date(y, m, d, minutes/60, minutes%60, 0, 0, time.UTC))
}

func (ts TimeString) String() string {
	return string(ts)
}
