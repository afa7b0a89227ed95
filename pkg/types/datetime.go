package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateTimeFormat формат сериализации даты-времени без смещения
const DateTimeFormat = "2006-01-02T15:04:05"

// ErrInvalidDateTime возвращается, если значение нельзя разобрать как дату-время
var ErrInvalidDateTime = errors.New("invalid datetime")

// Допустимые входные форматы. Первый совпавший побеждает.
var dateTimeLayouts = []string{
	DateTimeFormat,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// DateTime локальная дата-время без часового пояса.
// Внутри хранится настенное время в UTC, поэтому сравнения не зависят от зоны сервера.
type DateTime struct {
	t time.Time
}

// NewDateTime отбрасывает зону и доли секунды у t, сохраняя настенное время
func NewDateTime(t time.Time) DateTime {
	y, m, d := t.Date()
	return DateTime{t: time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParseDateTime разбирает строку в одном из поддерживаемых форматов
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateTime(t), nil
		}
	}
	return DateTime{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// MustParseDateTime как ParseDateTime, но паникует при ошибке. Для тестов и констант.
func MustParseDateTime(s string) DateTime {
	dt, err := ParseDateTime(s)
	if err != nil {
		panic(err)
	}
	return dt
}

func (d DateTime) Time() time.Time {
	return d.t
}

func (d DateTime) IsZero() bool {
	return d.t.IsZero()
}

func (d DateTime) Before(other DateTime) bool {
	return d.t.Before(other.t)
}

func (d DateTime) After(other DateTime) bool {
	return d.t.After(other.t)
}

func (d DateTime) Equal(other DateTime) bool {
	return d.t.Equal(other.t)
}

// SameDay возвращает true, если обе отметки приходятся на один календарный день
func (d DateTime) SameDay(other DateTime) bool {
	y1, m1, d1 := d.t.Date()
	y2, m2, d2 := other.t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d DateTime) String() string {
	return d.t.Format(DateTimeFormat)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateTime, err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner. Поддерживает timestamp и текстовые колонки.
func (d *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateTime(v)
		return nil
	case string:
		parsed, err := ParseDateTime(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDateTime(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		return fmt.Errorf("%w: NULL value", ErrInvalidDateTime)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDateTime, src)
	}
}

// Value реализует driver.Valuer
func (d DateTime) Value() (driver.Value, error) {
	return d.String(), nil
}
