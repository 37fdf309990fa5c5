package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/herflow/internal/models"
)

const MaxDayNotesLength = 2000

var (
	ErrInvalidFlowIntensity = errors.New("invalid flow intensity")
	ErrUnknownSymptom       = errors.New("unknown symptom")
	ErrUnknownMood          = errors.New("unknown mood")
	ErrInvalidOvulationTest = errors.New("invalid ovulation test result")
	ErrInvalidMeasurement   = errors.New("invalid measurement")
)

// DayEntryInput is the raw content of the day tracking form.
type DayEntryInput struct {
	Symptoms      []string `json:"symptoms"`
	Moods         []string `json:"moods"`
	Medicine      []string `json:"medicine"`
	OvulationTest string   `json:"ovulationTest"`
	Weight        *float64 `json:"weight"`
	Temperature   *float64 `json:"temperature"`
	WaterIntake   int      `json:"waterIntake"`
	Notes         string   `json:"notes"`
	PeriodStart   bool     `json:"periodStart"`
	FlowIntensity *int     `json:"flowIntensity"`
}

// NormalizeDayEntryInput turns form input into the log stored for day.
// The flow is only kept when the day starts a period and defaults to light.
func NormalizeDayEntryInput(day models.Date, input DayEntryInput) (models.DailyLog, error) {
	if day.IsZero() {
		return models.DailyLog{}, ErrDailyLogDateRequired
	}

	entry := models.EmptyDailyLog(day)
	for _, raw := range input.Symptoms {
		symptom, ok := models.ParseSymptom(raw)
		if !ok {
			return models.DailyLog{}, fmt.Errorf("%w: %q", ErrUnknownSymptom, raw)
		}
		entry.Symptoms = append(entry.Symptoms, symptom)
	}
	entry.Symptoms = uniqueTags(entry.Symptoms)

	for _, raw := range input.Moods {
		mood, ok := models.ParseMood(raw)
		if !ok {
			return models.DailyLog{}, fmt.Errorf("%w: %q", ErrUnknownMood, raw)
		}
		entry.Moods = append(entry.Moods, mood)
	}
	entry.Moods = uniqueTags(entry.Moods)

	medicine := make([]string, 0, len(input.Medicine))
	for _, raw := range input.Medicine {
		if name := strings.TrimSpace(raw); name != "" {
			medicine = append(medicine, name)
		}
	}
	if medicine = uniqueTags(medicine); len(medicine) > 0 {
		entry.Medicine = medicine
	}

	switch strings.ToLower(strings.TrimSpace(input.OvulationTest)) {
	case "":
	case string(models.OvulationTestPositive):
		result := models.OvulationTestPositive
		entry.OvulationTest = &result
	case string(models.OvulationTestNegative):
		result := models.OvulationTestNegative
		entry.OvulationTest = &result
	default:
		return models.DailyLog{}, fmt.Errorf("%w: %q", ErrInvalidOvulationTest, input.OvulationTest)
	}

	if input.Weight != nil {
		if *input.Weight <= 0 {
			return models.DailyLog{}, fmt.Errorf("%w: weight %v", ErrInvalidMeasurement, *input.Weight)
		}
		weight := *input.Weight
		entry.Weight = &weight
	}
	if input.Temperature != nil {
		if *input.Temperature <= 0 {
			return models.DailyLog{}, fmt.Errorf("%w: temperature %v", ErrInvalidMeasurement, *input.Temperature)
		}
		temperature := *input.Temperature
		entry.Temperature = &temperature
	}

	entry.WaterIntake = models.ClampWaterIntake(input.WaterIntake)
	entry.Notes = TrimDayNotes(input.Notes)

	if input.PeriodStart {
		flow := models.FlowLight
		if input.FlowIntensity != nil {
			flow = models.FlowIntensity(*input.FlowIntensity)
		}
		if !flow.IsValid() {
			return models.DailyLog{}, fmt.Errorf("%w: %d", ErrInvalidFlowIntensity, flow)
		}
		entry.FlowIntensity = &flow
	}
	return entry, nil
}

func TrimDayNotes(value string) string {
	runes := []rune(value)
	if len(runes) <= MaxDayNotesLength {
		return value
	}
	return string(runes[:MaxDayNotesLength])
}

// uniqueTags drops repeats and keeps first occurrence order.
func uniqueTags[T ~string](values []T) []T {
	result := make([]T, 0, len(values))
	seen := make(map[T]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
