package services

import (
	"fmt"

	"github.com/terraincognita07/herflow/internal/models"
)

const dueSoonDays = 3

type CycleStatusKind string

const (
	CycleStatusGetStarted    CycleStatusKind = "get_started"
	CycleStatusLate          CycleStatusKind = "late"
	CycleStatusDueToday      CycleStatusKind = "due_today"
	CycleStatusDueSoon       CycleStatusKind = "due_soon"
	CycleStatusOnPeriod      CycleStatusKind = "on_period"
	CycleStatusOvulationDay  CycleStatusKind = "ovulation_day"
	CycleStatusFertileWindow CycleStatusKind = "fertile_window"
	CycleStatusCycleDay      CycleStatusKind = "cycle_day"
	CycleStatusTrack         CycleStatusKind = "track"
)

type CycleStatus struct {
	Kind    CycleStatusKind `json:"kind"`
	Days    int             `json:"days,omitempty"`
	Message string          `json:"message"`
}

// FertilityOutlook is what the pregnancy view shows.
type FertilityOutlook struct {
	PregnancyMode      bool              `json:"pregnancyMode"`
	OvulationDate      *models.Date      `json:"ovulationDate"`
	FertileWindow      *models.DateRange `json:"fertileWindow"`
	DaysUntilOvulation *int              `json:"daysUntilOvulation"`
	IsFertileToday     bool              `json:"isFertileToday"`
}

// BuildCycleStatus picks the headline for today; the first matching rule wins.
func BuildCycleStatus(profile *models.UserProfile, periods []models.PeriodEntry, today models.Date) CycleStatus {
	if len(periods) == 0 {
		return newCycleStatus(CycleStatusGetStarted, 0)
	}

	if next, ok := NextPeriodDate(profile, periods); ok {
		daysUntil := next.DaysSince(today)
		switch {
		case daysUntil < 0:
			return newCycleStatus(CycleStatusLate, -daysUntil)
		case daysUntil == 0:
			return newCycleStatus(CycleStatusDueToday, 0)
		case daysUntil <= dueSoonDays:
			return newCycleStatus(CycleStatusDueSoon, daysUntil)
		}
	}

	switch {
	case IsPeriodDay(periods, today):
		return newCycleStatus(CycleStatusOnPeriod, 0)
	case IsOvulationDay(profile, periods, today):
		return newCycleStatus(CycleStatusOvulationDay, 0)
	case IsFertileDay(profile, periods, today):
		return newCycleStatus(CycleStatusFertileWindow, 0)
	}

	if cycleDay, ok := CycleDayNumber(profile, periods, today); ok {
		return newCycleStatus(CycleStatusCycleDay, cycleDay)
	}
	return newCycleStatus(CycleStatusTrack, 0)
}

func newCycleStatus(kind CycleStatusKind, days int) CycleStatus {
	return CycleStatus{Kind: kind, Days: days, Message: cycleStatusMessage(kind, days)}
}

func cycleStatusMessage(kind CycleStatusKind, days int) string {
	switch kind {
	case CycleStatusGetStarted:
		return "Add your period to get started"
	case CycleStatusLate:
		return fmt.Sprintf("Your period is %d %s late", days, pluralDays(days))
	case CycleStatusDueToday:
		return "Period expected today"
	case CycleStatusDueSoon:
		return fmt.Sprintf("Period expected in %d %s", days, pluralDays(days))
	case CycleStatusOnPeriod:
		return "You're on your period"
	case CycleStatusOvulationDay:
		return "Ovulation day!"
	case CycleStatusFertileWindow:
		return "Fertile window"
	case CycleStatusCycleDay:
		return fmt.Sprintf("Day %d of your cycle", days)
	default:
		return "Track your cycle"
	}
}

func pluralDays(days int) string {
	if days == 1 {
		return "day"
	}
	return "days"
}

func BuildFertilityOutlook(profile *models.UserProfile, periods []models.PeriodEntry, today models.Date) FertilityOutlook {
	outlook := FertilityOutlook{
		IsFertileToday: IsFertileDay(profile, periods, today),
	}
	if profile != nil {
		outlook.PregnancyMode = profile.PregnancyMode
	}
	if ovulation, ok := OvulationDate(profile, periods); ok {
		days := ovulation.DaysSince(today)
		outlook.OvulationDate = &ovulation
		outlook.DaysUntilOvulation = &days
	}
	if window, ok := FertileWindow(profile, periods); ok {
		outlook.FertileWindow = &window
	}
	return outlook
}
