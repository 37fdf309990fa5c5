package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
)

var (
	ErrOnboardingStepsRequired     = errors.New("complete onboarding steps first")
	ErrOnboardingStartDateRequired = errors.New("onboarding start date is required")
	ErrOnboardingStartDateInFuture = errors.New("onboarding start date in the future")
)

type OnboardingStore interface {
	Profile() *models.UserProfile
	SetProfile(profile *models.UserProfile) error
	UpdateProfile(update ProfileUpdate) (bool, error)
	AddPeriod(entry models.PeriodEntry) error
	SetOnboardingComplete(complete bool) error
}

type OnboardingService struct {
	store OnboardingStore
	now   func() time.Time
}

func NewOnboardingService(store OnboardingStore, now func() time.Time) *OnboardingService {
	if now == nil {
		now = time.Now
	}
	return &OnboardingService{store: store, now: now}
}

// Begin creates the profile from the name step with default lengths.
func (service *OnboardingService) Begin(rawName string) (models.UserProfile, error) {
	name, err := NormalizeProfileName(rawName)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile := models.NewUserProfile(name)
	if err := service.store.SetProfile(&profile); err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (service *OnboardingService) SetCycleLength(value int) error {
	if err := ValidateCycleLength(value); err != nil {
		return err
	}
	return service.updateProfile(ProfileUpdate{CycleLength: &value})
}

func (service *OnboardingService) SetPeriodLength(value int) error {
	if err := ValidatePeriodLength(value); err != nil {
		return err
	}
	return service.updateProfile(ProfileUpdate{PeriodLength: &value})
}

// ValidateLastPeriodStart rejects missing dates and dates after today.
func (service *OnboardingService) ValidateLastPeriodStart(start models.Date, location *time.Location) error {
	if start.IsZero() {
		return ErrOnboardingStartDateRequired
	}
	today := models.DateIn(service.now(), location)
	if start.After(today) {
		return fmt.Errorf("%w: %s", ErrOnboardingStartDateInFuture, start)
	}
	return nil
}

// Complete records the last period and finishes onboarding. A nil end
// defaults to start + periodLength - 1.
func (service *OnboardingService) Complete(start models.Date, end *models.Date, location *time.Location) (models.PeriodEntry, error) {
	profile := service.store.Profile()
	if profile == nil {
		return models.PeriodEntry{}, ErrOnboardingStepsRequired
	}
	if err := service.ValidateLastPeriodStart(start, location); err != nil {
		return models.PeriodEntry{}, err
	}

	period := models.PeriodEntry{
		StartDate: start,
		EndDate:   start.AddDays(profilePeriodLength(profile) - 1),
	}
	if end != nil && !end.IsZero() {
		if end.Before(start) {
			return models.PeriodEntry{}, fmt.Errorf("%w: %s..%s", ErrPeriodEndBeforeStart, start, *end)
		}
		period.EndDate = *end
	}

	if err := service.updateProfile(ProfileUpdate{LastPeriodStart: &start}); err != nil {
		return models.PeriodEntry{}, err
	}
	if err := service.store.AddPeriod(period); err != nil {
		return models.PeriodEntry{}, err
	}
	if err := service.store.SetOnboardingComplete(true); err != nil {
		return models.PeriodEntry{}, err
	}
	return period, nil
}

// Skip finishes onboarding without logging a period.
func (service *OnboardingService) Skip() error {
	return service.store.SetOnboardingComplete(true)
}

// SetupIncomplete reports whether the reminder to finish setup applies:
// no name yet or no period logged.
func SetupIncomplete(profile *models.UserProfile, periods []models.PeriodEntry) bool {
	return profile == nil || profile.Name == "" || len(periods) == 0
}

func (service *OnboardingService) updateProfile(update ProfileUpdate) error {
	updated, err := service.store.UpdateProfile(update)
	if err != nil {
		return err
	}
	if !updated {
		return ErrOnboardingStepsRequired
	}
	return nil
}
