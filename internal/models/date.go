package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

var ErrInvalidDateText = errors.New("invalid calendar date")

// Date is a calendar day without time-of-day or zone. The zero value means unset.
type Date struct {
	day time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{day: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates value to the calendar date observed in value's own location.
func DateOf(value time.Time) Date {
	if value.IsZero() {
		return Date{}
	}
	year, month, day := value.Date()
	return NewDate(year, month, day)
}

// DateIn truncates value to the calendar date observed in location.
func DateIn(value time.Time, location *time.Location) Date {
	if location == nil {
		location = time.UTC
	}
	return DateOf(value.In(location))
}

func ParseDate(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Date{}, ErrInvalidDateText
	}

	parsed, err := time.Parse(DateLayout, trimmed)
	if err == nil {
		return DateOf(parsed), nil
	}

	// Older exports stored full ISO timestamps; keep their calendar date.
	if withTime, timeErr := time.Parse(time.RFC3339Nano, trimmed); timeErr == nil {
		return DateOf(withTime), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateText, raw)
}

func (d Date) IsZero() bool {
	return d.day.IsZero()
}

func (d Date) Time() time.Time {
	return d.day
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.day.Format(DateLayout)
}

func (d Date) AddDays(days int) Date {
	if d.IsZero() {
		return d
	}
	return Date{day: d.day.AddDate(0, 0, days)}
}

// DaysSince returns the whole days from other to d; negative when d is earlier.
func (d Date) DaysSince(other Date) int {
	return int((d.day.Unix() - other.day.Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool {
	return d.day.Before(other.day)
}

func (d Date) After(other Date) bool {
	return d.day.After(other.day)
}

func (d Date) Equal(other Date) bool {
	return d.day.Equal(other.day)
}

func (d Date) Compare(other Date) int {
	return d.day.Compare(other.day)
}

// Within reports whether d lies in [start, end], both ends inclusive.
func (d Date) Within(start Date, end Date) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDateText, string(data))
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func (r DateRange) Contains(day Date) bool {
	return day.Within(r.Start, r.End)
}
