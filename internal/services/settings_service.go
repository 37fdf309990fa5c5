package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type SettingsStore interface {
	Profile() *models.UserProfile
	UpdateProfile(update ProfileUpdate) (bool, error)
	SetTheme(theme models.Theme) error
	ClearAllData() error
}

type SettingsService struct {
	store  SettingsStore
	logger *slog.Logger
	now    func() time.Time
}

func NewSettingsService(store SettingsStore, logger *slog.Logger, now func() time.Time) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &SettingsService{store: store, logger: logger, now: now}
}

// UpdateProfile validates update and merges it into the stored profile.
// Invalid input leaves the store unchanged.
func (service *SettingsService) UpdateProfile(update ProfileUpdate) (models.UserProfile, error) {
	normalized, err := ValidateProfileUpdate(update, service.now())
	if err != nil {
		return models.UserProfile{}, err
	}

	updated, err := service.store.UpdateProfile(normalized)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !updated {
		return models.UserProfile{}, ErrProfileNotFound
	}
	return *service.store.Profile(), nil
}

func (service *SettingsService) SetTheme(raw string) (models.Theme, error) {
	theme, err := ParseTheme(raw)
	if err != nil {
		return "", err
	}
	if err := service.store.SetTheme(theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (service *SettingsService) ClearAllData() error {
	if err := service.store.ClearAllData(); err != nil {
		return err
	}
	service.logger.Warn("all tracking data cleared")
	return nil
}
