package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
)

const monthLayout = "2006-01"

type CalendarMarker string

const (
	CalendarMarkerNone      CalendarMarker = ""
	CalendarMarkerPeriod    CalendarMarker = "period"
	CalendarMarkerOvulation CalendarMarker = "ovulation"
	CalendarMarkerFertile   CalendarMarker = "fertile"
	CalendarMarkerPredicted CalendarMarker = "predicted"
)

type CalendarDayState struct {
	Date        models.Date    `json:"date"`
	Day         int            `json:"day"`
	InMonth     bool           `json:"inMonth"`
	IsToday     bool           `json:"isToday"`
	IsPeriod    bool           `json:"isPeriod"`
	IsPredicted bool           `json:"isPredicted"`
	IsFertile   bool           `json:"isFertile"`
	IsOvulation bool           `json:"isOvulation"`
	HasNote     bool           `json:"hasNote"`
	CycleDay    int            `json:"cycleDay,omitempty"`
	Marker      CalendarMarker `json:"marker"`
}

// ParseMonth reads yyyy-MM and returns the first day of that month.
func ParseMonth(raw string) (models.Date, error) {
	parsed, err := time.Parse(monthLayout, strings.TrimSpace(raw))
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: month %q", ErrInvalidDate, raw)
	}
	return models.DateOf(parsed), nil
}

// MonthStart returns the first day of the month containing day.
func MonthStart(day models.Date) models.Date {
	value := day.Time()
	return models.NewDate(value.Year(), value.Month(), 1)
}

// BuildCalendarMonth lays out whole Sunday-first weeks covering the month
// that contains month.
func BuildCalendarMonth(month models.Date, profile *models.UserProfile, periods []models.PeriodEntry, logs []models.DailyLog, today models.Date) []CalendarDayState {
	monthStart := MonthStart(month)
	monthEnd := monthStart.Time().AddDate(0, 1, -1)
	gridStart := monthStart.AddDays(-int(monthStart.Time().Weekday()))
	gridEnd := models.DateOf(monthEnd).AddDays(6 - int(monthEnd.Weekday()))

	hasNote := make(map[models.Date]bool, len(logs))
	for _, entry := range logs {
		hasNote[entry.Date] = hasNote[entry.Date] || entry.HasNote()
	}

	var predicted models.DateRange
	hasPrediction := false
	if next, ok := NextPeriodDate(profile, periods); ok {
		predicted = models.DateRange{Start: next, End: next.AddDays(profilePeriodLength(profile) - 1)}
		hasPrediction = true
	}

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDays(1) {
		state := CalendarDayState{
			Date:        day,
			Day:         day.Time().Day(),
			InMonth:     day.Time().Month() == monthStart.Time().Month(),
			IsToday:     day.Equal(today),
			IsPeriod:    IsPeriodDay(periods, day),
			IsPredicted: hasPrediction && predicted.Contains(day),
			IsFertile:   IsFertileDay(profile, periods, day),
			IsOvulation: IsOvulationDay(profile, periods, day),
			HasNote:     hasNote[day],
		}
		if cycleDay, ok := CycleDayNumber(profile, periods, day); ok {
			state.CycleDay = cycleDay
		}
		state.Marker = calendarMarker(state)
		days = append(days, state)
	}
	return days
}

// calendarMarker picks the single highlight a cell shows.
func calendarMarker(state CalendarDayState) CalendarMarker {
	switch {
	case state.IsPeriod:
		return CalendarMarkerPeriod
	case state.IsOvulation:
		return CalendarMarkerOvulation
	case state.IsFertile:
		return CalendarMarkerFertile
	case state.IsPredicted:
		return CalendarMarkerPredicted
	default:
		return CalendarMarkerNone
	}
}
