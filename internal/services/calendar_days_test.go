package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/herflow/internal/models"
)

func findCalendarDay(t *testing.T, days []CalendarDayState, raw string) CalendarDayState {
	t.Helper()
	for _, day := range days {
		if day.Date.String() == raw {
			return day
		}
	}
	t.Fatalf("day %s not found in calendar grid", raw)
	return CalendarDayState{}
}

func TestBuildCalendarMonthGridCoversWholeWeeks(t *testing.T) {
	// January 2026 starts on Thursday and ends on Saturday.
	days := BuildCalendarMonth(mustDate(t, "2026-01-15"), nil, nil, nil, mustDate(t, "2026-01-20"))

	if len(days) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(days))
	}
	if days[0].Date.String() != "2025-12-28" || days[len(days)-1].Date.String() != "2026-01-31" {
		t.Fatalf("unexpected grid bounds %s..%s", days[0].Date, days[len(days)-1].Date)
	}
	if days[0].InMonth || !days[4].InMonth {
		t.Fatalf("unexpected in-month flags at grid start")
	}
	if !findCalendarDay(t, days, "2026-01-20").IsToday {
		t.Fatalf("expected today flag")
	}
}

func TestBuildCalendarMonthMarksCycleDays(t *testing.T) {
	profile := profileWithCycle(28)
	periods := []models.PeriodEntry{periodEntry(t, "2026-01-01", "2026-01-05")}
	noted := models.EmptyDailyLog(mustDate(t, "2026-01-08"))
	noted.Notes = "headache after lunch"
	empty := models.EmptyDailyLog(mustDate(t, "2026-01-09"))

	days := BuildCalendarMonth(mustDate(t, "2026-01-01"), profile, periods, []models.DailyLog{noted, empty}, mustDate(t, "2026-01-10"))

	tests := []struct {
		day      string
		marker   CalendarMarker
		cycleDay int
	}{
		{day: "2025-12-31", marker: CalendarMarkerNone, cycleDay: 0},
		{day: "2026-01-01", marker: CalendarMarkerPeriod, cycleDay: 1},
		{day: "2026-01-05", marker: CalendarMarkerPeriod, cycleDay: 5},
		{day: "2026-01-10", marker: CalendarMarkerFertile, cycleDay: 10},
		{day: "2026-01-15", marker: CalendarMarkerOvulation, cycleDay: 15},
		{day: "2026-01-17", marker: CalendarMarkerNone, cycleDay: 17},
		{day: "2026-01-29", marker: CalendarMarkerPredicted, cycleDay: 1},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			state := findCalendarDay(t, days, tt.day)
			if state.Marker != tt.marker {
				t.Fatalf("marker = %q, want %q", state.Marker, tt.marker)
			}
			if state.CycleDay != tt.cycleDay {
				t.Fatalf("cycle day = %d, want %d", state.CycleDay, tt.cycleDay)
			}
		})
	}

	ovulation := findCalendarDay(t, days, "2026-01-15")
	if !ovulation.IsFertile || !ovulation.IsOvulation {
		t.Fatalf("expected raw fertile and ovulation flags on ovulation day")
	}
	if !findCalendarDay(t, days, "2026-01-08").HasNote || findCalendarDay(t, days, "2026-01-09").HasNote {
		t.Fatalf("unexpected has-note flags")
	}
}

func TestParseMonth(t *testing.T) {
	month, err := ParseMonth("2026-02")
	if err != nil || month.String() != "2026-02-01" {
		t.Fatalf("ParseMonth() = %s, %v", month, err)
	}
	if _, err := ParseMonth("Feb 2026"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
