package services

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/terraincognita07/herflow/internal/models"
)

func floatPtr(value float64) *float64 {
	return &value
}

func TestNormalizeDayEntryInput(t *testing.T) {
	day := mustDate(t, "2026-01-10")

	entry, err := NormalizeDayEntryInput(day, DayEntryInput{
		Symptoms:      []string{"Cramps", "back pain", "cramps"},
		Moods:         []string{"calm", "Anxious"},
		Medicine:      []string{" ibuprofen ", "", "ibuprofen"},
		OvulationTest: "Positive",
		Weight:        floatPtr(60.2),
		WaterIntake:   15,
		Notes:         "long walk",
	})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(entry.Symptoms, []models.Symptom{models.SymptomCramps, models.SymptomBackache}) {
		t.Fatalf("unexpected symptoms: %v", entry.Symptoms)
	}
	if !reflect.DeepEqual(entry.Moods, []models.Mood{models.MoodCalm, models.MoodAnxious}) {
		t.Fatalf("unexpected moods: %v", entry.Moods)
	}
	if !reflect.DeepEqual(entry.Medicine, []string{"ibuprofen"}) {
		t.Fatalf("unexpected medicine: %v", entry.Medicine)
	}
	if entry.OvulationTest == nil || *entry.OvulationTest != models.OvulationTestPositive {
		t.Fatalf("unexpected ovulation test: %v", entry.OvulationTest)
	}
	if entry.WaterIntake != models.MaxWaterIntake {
		t.Fatalf("expected water clamped to %d, got %d", models.MaxWaterIntake, entry.WaterIntake)
	}
	if entry.FlowIntensity != nil {
		t.Fatalf("expected no flow when the day is not a period start")
	}
}

func TestNormalizeDayEntryInputFlow(t *testing.T) {
	day := mustDate(t, "2026-01-10")

	entry, err := NormalizeDayEntryInput(day, DayEntryInput{PeriodStart: true})
	if err != nil {
		t.Fatalf("NormalizeDayEntryInput() unexpected error: %v", err)
	}
	if entry.FlowIntensity == nil || *entry.FlowIntensity != models.FlowLight {
		t.Fatalf("expected default light flow, got %v", entry.FlowIntensity)
	}

	heavy := int(models.FlowHeavy)
	entry, _ = NormalizeDayEntryInput(day, DayEntryInput{PeriodStart: true, FlowIntensity: &heavy})
	if *entry.FlowIntensity != models.FlowHeavy {
		t.Fatalf("expected heavy flow, got %v", *entry.FlowIntensity)
	}

	entry, _ = NormalizeDayEntryInput(day, DayEntryInput{PeriodStart: false, FlowIntensity: &heavy})
	if entry.FlowIntensity != nil {
		t.Fatalf("expected flow dropped without a period start")
	}
}

func TestNormalizeDayEntryInputRejectsInvalidValues(t *testing.T) {
	day := mustDate(t, "2026-01-10")
	badFlow := 7

	tests := []struct {
		name    string
		day     models.Date
		input   DayEntryInput
		wantErr error
	}{
		{name: "missing date", input: DayEntryInput{}, wantErr: ErrDailyLogDateRequired},
		{name: "unknown symptom", day: day, input: DayEntryInput{Symptoms: []string{"sparkles"}}, wantErr: ErrUnknownSymptom},
		{name: "unknown mood", day: day, input: DayEntryInput{Moods: []string{"ecstatic"}}, wantErr: ErrUnknownMood},
		{name: "bad ovulation test", day: day, input: DayEntryInput{OvulationTest: "maybe"}, wantErr: ErrInvalidOvulationTest},
		{name: "negative weight", day: day, input: DayEntryInput{Weight: floatPtr(-1)}, wantErr: ErrInvalidMeasurement},
		{name: "zero temperature", day: day, input: DayEntryInput{Temperature: floatPtr(0)}, wantErr: ErrInvalidMeasurement},
		{name: "bad flow", day: day, input: DayEntryInput{PeriodStart: true, FlowIntensity: &badFlow}, wantErr: ErrInvalidFlowIntensity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeDayEntryInput(tt.day, tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTrimDayNotes(t *testing.T) {
	notes := strings.Repeat("é", MaxDayNotesLength+5)
	trimmed := TrimDayNotes(notes)
	if len([]rune(trimmed)) != MaxDayNotesLength {
		t.Fatalf("expected %d runes, got %d", MaxDayNotesLength, len([]rune(trimmed)))
	}
	if TrimDayNotes("short") != "short" {
		t.Fatalf("expected short notes untouched")
	}
}
