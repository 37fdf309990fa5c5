package models

import "sort"

type FlowIntensity int

const (
	FlowSpotting FlowIntensity = 1
	FlowLight    FlowIntensity = 2
	FlowMedium   FlowIntensity = 3
	FlowHeavy    FlowIntensity = 4
)

func (f FlowIntensity) IsValid() bool {
	return f >= FlowSpotting && f <= FlowHeavy
}

func (f FlowIntensity) Label() string {
	switch f {
	case FlowSpotting:
		return "Spotting"
	case FlowLight:
		return "Light"
	case FlowMedium:
		return "Medium"
	case FlowHeavy:
		return "Heavy"
	default:
		return "None"
	}
}

type PeriodEntry struct {
	StartDate     Date           `json:"startDate"`
	EndDate       Date           `json:"endDate"`
	FlowIntensity *FlowIntensity `json:"flowIntensity,omitempty"`
}

// Length is the inclusive day count from start to end.
func (p PeriodEntry) Length() int {
	return p.EndDate.DaysSince(p.StartDate) + 1
}

func (p PeriodEntry) Contains(day Date) bool {
	return day.Within(p.StartDate, p.EndDate)
}

func (p PeriodEntry) Clone() PeriodEntry {
	cloned := p
	if p.FlowIntensity != nil {
		flow := *p.FlowIntensity
		cloned.FlowIntensity = &flow
	}
	return cloned
}

// SortPeriodsDescending orders entries most recent start first. Equal starts keep their relative order.
func SortPeriodsDescending(periods []PeriodEntry) {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.After(periods[j].StartDate)
	})
}

func ClonePeriods(periods []PeriodEntry) []PeriodEntry {
	cloned := make([]PeriodEntry, 0, len(periods))
	for _, period := range periods {
		cloned = append(cloned, period.Clone())
	}
	return cloned
}
