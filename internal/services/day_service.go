package services

import (
	"fmt"

	"github.com/terraincognita07/herflow/internal/models"
)

type DayStore interface {
	Profile() *models.UserProfile
	Periods() []models.PeriodEntry
	AddPeriod(entry models.PeriodEntry) error
	UpdatePeriod(index int, entry models.PeriodEntry) error
	DeletePeriod(index int) error
	UpsertDailyLog(log models.DailyLog) error
	GetDailyLog(day models.Date) (models.DailyLog, bool)
}

type DayService struct {
	store DayStore
}

func NewDayService(store DayStore) *DayService {
	return &DayService{store: store}
}

// LoadDay returns the stored log for day or an empty one.
func (service *DayService) LoadDay(day models.Date) models.DailyLog {
	if entry, ok := service.store.GetDailyLog(day); ok {
		return entry
	}
	return models.EmptyDailyLog(day)
}

// SaveDay replaces the whole log for day. When the form marks a period
// start, a period of the profile's length is recorded from that day. A
// period already starting that day only gets its flow updated.
//
// The log is written first. If recording the period then fails, the log
// stays saved and resubmitting the form records the period.
func (service *DayService) SaveDay(day models.Date, input DayEntryInput) (models.DailyLog, error) {
	entry, err := NormalizeDayEntryInput(day, input)
	if err != nil {
		return models.DailyLog{}, err
	}

	if err := service.store.UpsertDailyLog(entry); err != nil {
		return models.DailyLog{}, err
	}

	if input.PeriodStart {
		if err := service.recordPeriodStart(day, entry.FlowIntensity); err != nil {
			return models.DailyLog{}, err
		}
	}
	return entry, nil
}

// DeletePeriodStartingOn removes the first period starting on day and clears
// the flow copied into that day's log. It reports false when none matched.
func (service *DayService) DeletePeriodStartingOn(day models.Date) (bool, error) {
	index := findPeriodStartingOn(service.store.Periods(), day)
	if index < 0 {
		return false, nil
	}
	if err := service.store.DeletePeriod(index); err != nil {
		return false, err
	}

	if entry, ok := service.store.GetDailyLog(day); ok && entry.FlowIntensity != nil {
		entry.FlowIntensity = nil
		if err := service.store.UpsertDailyLog(entry); err != nil {
			return true, err
		}
	}
	return true, nil
}

// AdjustWaterIntake adds delta glasses to the day's log, clamped to 0..12.
func (service *DayService) AdjustWaterIntake(day models.Date, delta int) (models.DailyLog, error) {
	if day.IsZero() {
		return models.DailyLog{}, ErrDailyLogDateRequired
	}
	entry := service.LoadDay(day)
	entry.WaterIntake = models.ClampWaterIntake(entry.WaterIntake + delta)
	if err := service.store.UpsertDailyLog(entry); err != nil {
		return models.DailyLog{}, err
	}
	return entry, nil
}

// IsPeriodStart reports whether a logged period begins on day.
func (service *DayService) IsPeriodStart(day models.Date) bool {
	return findPeriodStartingOn(service.store.Periods(), day) >= 0
}

func (service *DayService) recordPeriodStart(day models.Date, flow *models.FlowIntensity) error {
	periodLength := profilePeriodLength(service.store.Profile())
	period := models.PeriodEntry{
		StartDate:     day,
		EndDate:       day.AddDays(periodLength - 1),
		FlowIntensity: flow,
	}

	periods := service.store.Periods()
	if index := findPeriodStartingOn(periods, day); index >= 0 {
		period.EndDate = periods[index].EndDate
		if err := service.store.UpdatePeriod(index, period); err != nil {
			return fmt.Errorf("update period starting %s: %w", day, err)
		}
		return nil
	}
	if err := service.store.AddPeriod(period); err != nil {
		return fmt.Errorf("add period starting %s: %w", day, err)
	}
	return nil
}

func findPeriodStartingOn(periods []models.PeriodEntry, day models.Date) int {
	for index, period := range periods {
		if period.StartDate.Equal(day) {
			return index
		}
	}
	return -1
}
