package models

import "strings"

const MaxWaterIntake = 12

type OvulationTest string

const (
	OvulationTestPositive OvulationTest = "positive"
	OvulationTestNegative OvulationTest = "negative"
)

type DailyLog struct {
	Date          Date           `json:"date"`
	Symptoms      []Symptom      `json:"symptoms"`
	Moods         []Mood         `json:"moods"`
	Medicine      []string       `json:"medicine,omitempty"`
	OvulationTest *OvulationTest `json:"ovulationTest,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	Temperature   *float64       `json:"temperature,omitempty"`
	WaterIntake   int            `json:"waterIntake"`
	Notes         string         `json:"notes,omitempty"`
	FlowIntensity *FlowIntensity `json:"flowIntensity,omitempty"`
}

func EmptyDailyLog(day Date) DailyLog {
	return DailyLog{
		Date:     day,
		Symptoms: []Symptom{},
		Moods:    []Mood{},
	}
}

// HasNote reports whether the day carries anything worth marking on a calendar.
func (l DailyLog) HasNote() bool {
	return strings.TrimSpace(l.Notes) != "" || len(l.Symptoms) > 0 || len(l.Moods) > 0
}

func (l DailyLog) Clone() DailyLog {
	cloned := l
	cloned.Symptoms = append([]Symptom{}, l.Symptoms...)
	cloned.Moods = append([]Mood{}, l.Moods...)
	if l.Medicine != nil {
		cloned.Medicine = append([]string{}, l.Medicine...)
	}
	if l.OvulationTest != nil {
		test := *l.OvulationTest
		cloned.OvulationTest = &test
	}
	if l.Weight != nil {
		weight := *l.Weight
		cloned.Weight = &weight
	}
	if l.Temperature != nil {
		temperature := *l.Temperature
		cloned.Temperature = &temperature
	}
	if l.FlowIntensity != nil {
		flow := *l.FlowIntensity
		cloned.FlowIntensity = &flow
	}
	return cloned
}

func CloneDailyLogs(logs []DailyLog) []DailyLog {
	cloned := make([]DailyLog, 0, len(logs))
	for _, entry := range logs {
		cloned = append(cloned, entry.Clone())
	}
	return cloned
}

func ClampWaterIntake(value int) int {
	if value < 0 {
		return 0
	}
	if value > MaxWaterIntake {
		return MaxWaterIntake
	}
	return value
}
