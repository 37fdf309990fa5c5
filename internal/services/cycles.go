package services

import "github.com/terraincognita07/herflow/internal/models"

const (
	lutealPhaseDays            = 14
	fertileDaysBeforeOvulation = 5
	fertileDaysAfterOvulation  = 1
)

// CyclePrediction bundles every derived value for one calendar day.
// Pointer fields are nil when there is not enough data to compute them.
type CyclePrediction struct {
	Date                models.Date       `json:"date"`
	LastPeriodStart     *models.Date      `json:"lastPeriodStart"`
	NextPeriodDate      *models.Date      `json:"nextPeriodDate"`
	DaysUntilNextPeriod *int              `json:"daysUntilNextPeriod"`
	OvulationDate       *models.Date      `json:"ovulationDate"`
	FertileWindow       *models.DateRange `json:"fertileWindow"`
	CycleDay            *int              `json:"cycleDay"`
	IsPeriodDay         bool              `json:"isPeriodDay"`
	IsFertileDay        bool              `json:"isFertileDay"`
	IsOvulationDay      bool              `json:"isOvulationDay"`
}

// MostRecentPeriod returns the first entry of a collection sorted most recent first.
func MostRecentPeriod(periods []models.PeriodEntry) (models.PeriodEntry, bool) {
	if len(periods) == 0 {
		return models.PeriodEntry{}, false
	}
	return periods[0], true
}

func NextPeriodDate(profile *models.UserProfile, periods []models.PeriodEntry) (models.Date, bool) {
	last, ok := MostRecentPeriod(periods)
	if !ok || profile == nil || profile.CycleLength <= 0 {
		return models.Date{}, false
	}
	return last.StartDate.AddDays(profile.CycleLength), true
}

// OvulationDate assumes ovulation lutealPhaseDays before the next period.
// Cycles too short to place it after the last period start have none.
func OvulationDate(profile *models.UserProfile, periods []models.PeriodEntry) (models.Date, bool) {
	last, ok := MostRecentPeriod(periods)
	if !ok || profile == nil {
		return models.Date{}, false
	}
	offset := profile.CycleLength - lutealPhaseDays
	if offset <= 0 {
		return models.Date{}, false
	}
	return last.StartDate.AddDays(offset), true
}

func FertileWindow(profile *models.UserProfile, periods []models.PeriodEntry) (models.DateRange, bool) {
	ovulation, ok := OvulationDate(profile, periods)
	if !ok {
		return models.DateRange{}, false
	}
	return models.DateRange{
		Start: ovulation.AddDays(-fertileDaysBeforeOvulation),
		End:   ovulation.AddDays(fertileDaysAfterOvulation),
	}, true
}

// IsPeriodDay checks every entry; overlapping entries are allowed.
func IsPeriodDay(periods []models.PeriodEntry, day models.Date) bool {
	for _, period := range periods {
		if period.Contains(day) {
			return true
		}
	}
	return false
}

func IsFertileDay(profile *models.UserProfile, periods []models.PeriodEntry, day models.Date) bool {
	window, ok := FertileWindow(profile, periods)
	return ok && window.Contains(day)
}

func IsOvulationDay(profile *models.UserProfile, periods []models.PeriodEntry, day models.Date) bool {
	ovulation, ok := OvulationDate(profile, periods)
	return ok && ovulation.Equal(day)
}

// CycleDayNumber is the 1-based day of the repeating cycle that starts at
// the most recent period. Days before that start have no cycle day.
func CycleDayNumber(profile *models.UserProfile, periods []models.PeriodEntry, day models.Date) (int, bool) {
	last, ok := MostRecentPeriod(periods)
	if !ok || day.Before(last.StartDate) {
		return 0, false
	}
	return ProjectCycleDay(last.StartDate, profileCycleLength(profile), day), true
}

// ProjectCycleDay wraps day into a cycle of cycleLength days anchored at start.
func ProjectCycleDay(start models.Date, cycleLength int, day models.Date) int {
	if cycleLength <= 0 {
		cycleLength = models.DefaultCycleLength
	}
	elapsed := day.DaysSince(start)
	if elapsed < 0 {
		return 0
	}
	return elapsed%cycleLength + 1
}

func BuildCyclePrediction(profile *models.UserProfile, periods []models.PeriodEntry, day models.Date) CyclePrediction {
	prediction := CyclePrediction{
		Date:           day,
		IsPeriodDay:    IsPeriodDay(periods, day),
		IsFertileDay:   IsFertileDay(profile, periods, day),
		IsOvulationDay: IsOvulationDay(profile, periods, day),
	}

	if last, ok := MostRecentPeriod(periods); ok {
		start := last.StartDate
		prediction.LastPeriodStart = &start
	}
	if next, ok := NextPeriodDate(profile, periods); ok {
		days := next.DaysSince(day)
		prediction.NextPeriodDate = &next
		prediction.DaysUntilNextPeriod = &days
	}
	if ovulation, ok := OvulationDate(profile, periods); ok {
		prediction.OvulationDate = &ovulation
	}
	if window, ok := FertileWindow(profile, periods); ok {
		prediction.FertileWindow = &window
	}
	if cycleDay, ok := CycleDayNumber(profile, periods, day); ok {
		prediction.CycleDay = &cycleDay
	}
	return prediction
}

func profileCycleLength(profile *models.UserProfile) int {
	if profile == nil || profile.CycleLength <= 0 {
		return models.DefaultCycleLength
	}
	return profile.CycleLength
}

func profilePeriodLength(profile *models.UserProfile) int {
	if profile == nil || profile.PeriodLength <= 0 {
		return models.DefaultPeriodLength
	}
	return profile.PeriodLength
}
