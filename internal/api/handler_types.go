package api

import (
	"log/slog"
	"time"

	"github.com/terraincognita07/herflow/internal/metrics"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

type Handler struct {
	store         *services.DomainStore
	location      *time.Location
	logger        *slog.Logger
	now           func() time.Time
	dayService    *services.DayService
	onboardingSvc *services.OnboardingService
	settingsSvc   *services.SettingsService
	backupService *services.BackupService
	metrics       metrics.Recorder
}

func NewHandler(store *services.DomainStore, location *time.Location, logger *slog.Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}

	handler := &Handler{
		store:    store,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
	clock := func() time.Time { return handler.now() }
	handler.dayService = services.NewDayService(store)
	handler.onboardingSvc = services.NewOnboardingService(store, clock)
	handler.settingsSvc = services.NewSettingsService(store, logger, clock)
	handler.backupService = services.NewBackupService(store, logger)
	return handler
}

// WithMetrics reports backup outcomes to recorder.
func (handler *Handler) WithMetrics(recorder metrics.Recorder) *Handler {
	handler.metrics = recorder
	return handler
}

func (handler *Handler) recordBackup(operation string, ok bool) {
	if handler.metrics != nil {
		handler.metrics.RecordBackup(operation, ok)
	}
}

func (handler *Handler) today() models.Date {
	return models.DateIn(handler.now(), handler.location)
}

type stateResponse struct {
	Profile            *models.UserProfile  `json:"userData"`
	Periods            []models.PeriodEntry `json:"periods"`
	DailyLogs          []models.DailyLog    `json:"dailyLogs"`
	Theme              models.Theme         `json:"theme"`
	OnboardingComplete bool                 `json:"onboardingComplete"`
	SetupIncomplete    bool                 `json:"setupIncomplete"`
}

type nameInput struct {
	Name string `json:"name"`
}

type lengthInput struct {
	Value int `json:"value"`
}

type onboardingCompleteInput struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type waterInput struct {
	Delta int `json:"delta"`
}

type themeInput struct {
	Theme string `json:"theme"`
}
