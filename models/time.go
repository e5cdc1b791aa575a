package models

import (
	"fmt"
	"strings"
	"time"
)

// Форматы даты и времени бэкенда: LocalDate и LocalDateTime без зоны.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date - календарная дата в формате бэкенда ("2006-01-02").
type Date struct {
	time.Time
}

// NewDate создает Date, отбрасывая время суток.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("некорректная дата %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// DateTime - момент времени в формате бэкенда ("2006-01-02T15:04:05").
// Бэкенд сериализует LocalDateTime без смещения, поэтому стандартный
// RFC3339-парсинг time.Time здесь не подходит.
type DateTime struct {
	time.Time
}

// NewDateTime создает DateTime, усекая до секунд.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.Truncate(time.Second)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Некоторые ответы содержат доли секунды, отрезаем их.
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("некорректное время %q: %w", s, err)
	}
	d.Time = t
	return nil
}
