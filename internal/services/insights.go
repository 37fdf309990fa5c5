package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/herflow/internal/models"
)

const (
	maxPlausibleCycleLength = 60
	maxRegularVariationDays = 7
	topTagLimit             = 3
)

type Regularity string

const (
	RegularityRegular   Regularity = "regular"
	RegularityIrregular Regularity = "irregular"
)

type Insights struct {
	AvgCycleLength  int              `json:"avgCycleLength"`
	AvgPeriodLength int              `json:"avgPeriodLength"`
	CycleVariation  int              `json:"cycleVariation"`
	Regularity      Regularity       `json:"regularity"`
	IsRegular       bool             `json:"isRegular"`
	TotalPeriods    int              `json:"totalPeriods"`
	CycleLengths    []int            `json:"cycleLengths"`
	PeriodLengths   []int            `json:"periodLengths"`
	TopSymptoms     []models.Symptom `json:"topSymptoms"`
	TopMoods        []models.Mood    `json:"topMoods"`
}

// BuildInsights needs at least two periods; with fewer it reports false.
// periods must be sorted most recent first.
func BuildInsights(profile *models.UserProfile, periods []models.PeriodEntry, logs []models.DailyLog) (Insights, bool) {
	if len(periods) < 2 {
		return Insights{}, false
	}

	cycleLengths := CycleLengths(periods)
	periodLengths := PeriodLengths(periods)

	avgCycle, ok := roundedMean(cycleLengths)
	if !ok {
		avgCycle = profileCycleLength(profile)
	}
	avgPeriod, ok := roundedMean(periodLengths)
	if !ok {
		avgPeriod = profilePeriodLength(profile)
	}

	variation := CycleVariation(cycleLengths)
	regularity := ClassifyRegularity(variation)

	return Insights{
		AvgCycleLength:  avgCycle,
		AvgPeriodLength: avgPeriod,
		CycleVariation:  variation,
		Regularity:      regularity,
		IsRegular:       regularity == RegularityRegular,
		TotalPeriods:    len(periods),
		CycleLengths:    cycleLengths,
		PeriodLengths:   periodLengths,
		TopSymptoms:     TopSymptoms(logs, topTagLimit),
		TopMoods:        TopMoods(logs, topTagLimit),
	}, true
}

// CycleLengths measures adjacent starts and keeps only lengths in (0, 60).
// Zero or negative gaps come from duplicate or misordered entries.
func CycleLengths(periods []models.PeriodEntry) []int {
	lengths := make([]int, 0, len(periods))
	for index := 0; index+1 < len(periods); index++ {
		length := periods[index].StartDate.DaysSince(periods[index+1].StartDate)
		if length > 0 && length < maxPlausibleCycleLength {
			lengths = append(lengths, length)
		}
	}
	return lengths
}

func PeriodLengths(periods []models.PeriodEntry) []int {
	lengths := make([]int, 0, len(periods))
	for _, period := range periods {
		lengths = append(lengths, period.Length())
	}
	return lengths
}

// CycleVariation is max-min over the samples, or 0 with fewer than two.
func CycleVariation(lengths []int) int {
	if len(lengths) < 2 {
		return 0
	}
	minimum, maximum := lengths[0], lengths[0]
	for _, length := range lengths[1:] {
		if length < minimum {
			minimum = length
		}
		if length > maximum {
			maximum = length
		}
	}
	return maximum - minimum
}

func ClassifyRegularity(variation int) Regularity {
	if variation <= maxRegularVariationDays {
		return RegularityRegular
	}
	return RegularityIrregular
}

func TopSymptoms(logs []models.DailyLog, limit int) []models.Symptom {
	groups := make([][]models.Symptom, 0, len(logs))
	for _, entry := range logs {
		groups = append(groups, entry.Symptoms)
	}
	return rankTags(groups, limit)
}

func TopMoods(logs []models.DailyLog, limit int) []models.Mood {
	groups := make([][]models.Mood, 0, len(logs))
	for _, entry := range logs {
		groups = append(groups, entry.Moods)
	}
	return rankTags(groups, limit)
}

// rankTags orders tags by occurrence count; ties keep first-seen order.
func rankTags[T ~string](groups [][]T, limit int) []T {
	counts := make(map[T]int)
	order := make([]T, 0)
	for _, group := range groups {
		for _, tag := range group {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}

func roundedMean(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return int(math.Floor(float64(total)/float64(len(values)) + 0.5)), true
}
