package domain

import "time"

// Table стол ресторана
type Table struct {
	ID          int64
	Name        string
	Capacity    int
	Location    string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fits возвращает true, если стол вмещает guestCount гостей
func (t *Table) Fits(guestCount int) bool {
	return guestCount <= t.Capacity
}
