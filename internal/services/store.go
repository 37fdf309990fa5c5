package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/terraincognita07/herflow/internal/models"
)

var (
	ErrStoreNotLoaded        = errors.New("store not loaded")
	ErrStoreClosed           = errors.New("store closed")
	ErrStateCorrupt          = errors.New("persisted state corrupt")
	ErrPersistFailed         = errors.New("persist state failed")
	ErrPeriodIndexOutOfRange = errors.New("period index out of range")
	ErrPeriodEndBeforeStart  = errors.New("period end before start")
	ErrPeriodStartRequired   = errors.New("period start date is required")
	ErrDailyLogDateRequired  = errors.New("daily log date is required")
)

// StateRepository persists one JSON document per state key.
type StateRepository interface {
	LoadAll() (map[string]string, error)
	Save(key string, value string) error
	SaveBatch(values map[string]*string) error
	DeleteAll() error
}

// DomainStore owns the profile, period history, daily logs and settings.
// Every mutation is persisted before the in-memory copy is replaced, so a
// failed write leaves the store exactly as it was.
type DomainStore struct {
	mu     sync.RWMutex
	repo   StateRepository
	logger *slog.Logger

	defaults models.Settings
	loaded   bool
	closed   bool

	profile            *models.UserProfile
	periods            []models.PeriodEntry
	dailyLogs          []models.DailyLog
	settings           models.Settings
	onboardingComplete bool
}

func NewDomainStore(repo StateRepository, logger *slog.Logger, defaults models.Settings) *DomainStore {
	if logger == nil {
		logger = slog.Default()
	}
	if !defaults.Theme.IsValid() {
		defaults = models.DefaultSettings()
	}
	return &DomainStore{
		repo:      repo,
		logger:    logger,
		defaults:  defaults,
		periods:   []models.PeriodEntry{},
		dailyLogs: []models.DailyLog{},
		settings:  defaults,
	}
}

// Load reads every persisted key once. Missing keys keep their defaults.
func (store *DomainStore) Load() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.closed {
		return ErrStoreClosed
	}

	values, err := store.repo.LoadAll()
	if err != nil {
		store.logger.Error("load state failed", "error", err)
		return fmt.Errorf("load state: %w", err)
	}

	state := loadedState{
		periods:   []models.PeriodEntry{},
		dailyLogs: []models.DailyLog{},
		settings:  store.defaults,
	}
	for _, key := range models.StateKeys() {
		raw, ok := values[key]
		if !ok {
			continue
		}
		if err := state.decode(key, raw); err != nil {
			store.logger.Error("decode state failed", "key", key, "error", err)
			return fmt.Errorf("%w: %s: %w", ErrStateCorrupt, key, err)
		}
	}
	models.SortPeriodsDescending(state.periods)

	store.profile = state.profile
	store.periods = state.periods
	store.dailyLogs = state.dailyLogs
	store.settings = state.settings
	store.onboardingComplete = state.onboardingComplete
	store.loaded = true

	store.logger.Info("state loaded",
		"periods", len(store.periods),
		"daily_logs", len(store.dailyLogs),
		"onboarding_complete", store.onboardingComplete,
	)
	return nil
}

// Close rejects further mutations. Mutations persist before they return,
// so Close writes nothing and leaves other writers' state intact.
func (store *DomainStore) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.closed = true
	return nil
}

func (store *DomainStore) Profile() *models.UserProfile {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.profile == nil {
		return nil
	}
	cloned := store.profile.Clone()
	return &cloned
}

// SetProfile replaces the profile; nil removes it.
func (store *DomainStore) SetProfile(profile *models.UserProfile) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}

	var next *models.UserProfile
	if profile != nil {
		cloned := profile.Clone()
		next = &cloned
	}
	if next == nil {
		if err := store.persistBatchLocked(map[string]*string{models.StateKeyUserProfile: nil}); err != nil {
			return err
		}
	} else if err := store.persistLocked(models.StateKeyUserProfile, next); err != nil {
		return err
	}

	store.profile = next
	return nil
}

// UpdateProfile merges the set fields of update into the current profile.
// It reports false and changes nothing when no profile exists yet.
func (store *DomainStore) UpdateProfile(update ProfileUpdate) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return false, err
	}
	if store.profile == nil {
		return false, nil
	}

	next := update.Apply(*store.profile)
	if err := store.persistLocked(models.StateKeyUserProfile, next); err != nil {
		return false, err
	}
	store.profile = &next
	return true, nil
}

func (store *DomainStore) Periods() []models.PeriodEntry {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return models.ClonePeriods(store.periods)
}

// AddPeriod appends entry and re-sorts by start date, most recent first.
// Entries sharing a start date are kept side by side.
func (store *DomainStore) AddPeriod(entry models.PeriodEntry) error {
	if err := validatePeriodEntry(entry); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}

	next := append(models.ClonePeriods(store.periods), entry.Clone())
	models.SortPeriodsDescending(next)
	return store.replacePeriodsLocked(next)
}

// UpdatePeriod replaces the entry at index in the current sorted order.
func (store *DomainStore) UpdatePeriod(index int, entry models.PeriodEntry) error {
	if err := validatePeriodEntry(entry); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(store.periods) {
		return fmt.Errorf("%w: %d", ErrPeriodIndexOutOfRange, index)
	}

	next := models.ClonePeriods(store.periods)
	next[index] = entry.Clone()
	models.SortPeriodsDescending(next)
	return store.replacePeriodsLocked(next)
}

func (store *DomainStore) DeletePeriod(index int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(store.periods) {
		return fmt.Errorf("%w: %d", ErrPeriodIndexOutOfRange, index)
	}

	next := make([]models.PeriodEntry, 0, len(store.periods)-1)
	for position, period := range store.periods {
		if position == index {
			continue
		}
		next = append(next, period.Clone())
	}
	return store.replacePeriodsLocked(next)
}

func (store *DomainStore) DailyLogs() []models.DailyLog {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return models.CloneDailyLogs(store.dailyLogs)
}

// UpsertDailyLog replaces the whole log stored for log.Date, or appends it.
func (store *DomainStore) UpsertDailyLog(log models.DailyLog) error {
	if log.Date.IsZero() {
		return ErrDailyLogDateRequired
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}

	next := models.CloneDailyLogs(store.dailyLogs)
	replaced := false
	for index := range next {
		if next[index].Date.Equal(log.Date) {
			next[index] = log.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, log.Clone())
	}

	if err := store.persistLocked(models.StateKeyDailyLogs, next); err != nil {
		return err
	}
	store.dailyLogs = next
	return nil
}

func (store *DomainStore) GetDailyLog(day models.Date) (models.DailyLog, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, entry := range store.dailyLogs {
		if entry.Date.Equal(day) {
			return entry.Clone(), true
		}
	}
	return models.DailyLog{}, false
}

func (store *DomainStore) Settings() models.Settings {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.settings
}

func (store *DomainStore) SetTheme(theme models.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}
	if err := store.persistLocked(models.StateKeyTheme, theme); err != nil {
		return err
	}
	store.settings.Theme = theme
	return nil
}

func (store *DomainStore) OnboardingComplete() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.onboardingComplete
}

func (store *DomainStore) SetOnboardingComplete(complete bool) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}
	if err := store.persistLocked(models.StateKeyOnboardingComplete, complete); err != nil {
		return err
	}
	store.onboardingComplete = complete
	return nil
}

// Snapshot returns deep copies of everything the store owns.
func (store *DomainStore) Snapshot() models.StateSnapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()

	snapshot := models.StateSnapshot{
		Periods:            models.ClonePeriods(store.periods),
		DailyLogs:          models.CloneDailyLogs(store.dailyLogs),
		Settings:           store.settings,
		OnboardingComplete: store.onboardingComplete,
	}
	if store.profile != nil {
		profile := store.profile.Clone()
		snapshot.Profile = &profile
	}
	return snapshot
}

// ApplyBackup writes the sections present in backup, plus the completed
// onboarding flag, in a single batch. Absent sections are left untouched.
func (store *DomainStore) ApplyBackup(backup DecodedBackup) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}

	batch := map[string]*string{}
	nextProfile := store.profile
	nextPeriods := store.periods
	nextLogs := store.dailyLogs
	nextSettings := store.settings

	if backup.Profile != nil {
		profile := backup.Profile.Clone()
		nextProfile = &profile
		if err := putEncoded(batch, models.StateKeyUserProfile, nextProfile); err != nil {
			return err
		}
	}
	if backup.HasPeriods {
		nextPeriods = models.ClonePeriods(backup.Periods)
		models.SortPeriodsDescending(nextPeriods)
		if err := putEncoded(batch, models.StateKeyPeriods, nextPeriods); err != nil {
			return err
		}
	}
	if backup.HasDailyLogs {
		nextLogs = models.CloneDailyLogs(backup.DailyLogs)
		if err := putEncoded(batch, models.StateKeyDailyLogs, nextLogs); err != nil {
			return err
		}
	}
	if backup.Theme != nil {
		nextSettings.Theme = *backup.Theme
		if err := putEncoded(batch, models.StateKeyTheme, nextSettings.Theme); err != nil {
			return err
		}
	}
	if err := putEncoded(batch, models.StateKeyOnboardingComplete, true); err != nil {
		return err
	}

	if err := store.persistBatchLocked(batch); err != nil {
		return err
	}

	store.profile = nextProfile
	store.periods = nextPeriods
	store.dailyLogs = nextLogs
	store.settings = nextSettings
	store.onboardingComplete = true
	return nil
}

// ClearAllData wipes every persisted key and resets to first-run defaults.
func (store *DomainStore) ClearAllData() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.writableLocked(); err != nil {
		return err
	}
	if err := store.repo.DeleteAll(); err != nil {
		store.logger.Error("clear state failed", "error", err)
		return fmt.Errorf("%w: clear: %w", ErrPersistFailed, err)
	}

	store.profile = nil
	store.periods = []models.PeriodEntry{}
	store.dailyLogs = []models.DailyLog{}
	store.settings = store.defaults
	store.onboardingComplete = false
	store.logger.Info("state cleared")
	return nil
}

func (store *DomainStore) writableLocked() error {
	if store.closed {
		return ErrStoreClosed
	}
	if !store.loaded {
		return ErrStoreNotLoaded
	}
	return nil
}

func (store *DomainStore) replacePeriodsLocked(next []models.PeriodEntry) error {
	if err := store.persistLocked(models.StateKeyPeriods, next); err != nil {
		return err
	}
	store.periods = next
	return nil
}

func (store *DomainStore) persistLocked(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistFailed, key, err)
	}
	if err := store.repo.Save(key, string(encoded)); err != nil {
		store.logger.Error("persist state failed", "key", key, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrPersistFailed, key, err)
	}
	return nil
}

func (store *DomainStore) persistBatchLocked(batch map[string]*string) error {
	if err := store.repo.SaveBatch(batch); err != nil {
		keys := make([]string, 0, len(batch))
		for key := range batch {
			keys = append(keys, key)
		}
		store.logger.Error("persist state batch failed", "keys", strings.Join(keys, ","), "error", err)
		return fmt.Errorf("%w: batch: %w", ErrPersistFailed, err)
	}
	return nil
}

func putEncoded(batch map[string]*string, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersistFailed, key, err)
	}
	text := string(encoded)
	batch[key] = &text
	return nil
}

func validatePeriodEntry(entry models.PeriodEntry) error {
	if entry.StartDate.IsZero() {
		return ErrPeriodStartRequired
	}
	if entry.EndDate.IsZero() || entry.EndDate.Before(entry.StartDate) {
		return fmt.Errorf("%w: %s..%s", ErrPeriodEndBeforeStart, entry.StartDate, entry.EndDate)
	}
	if entry.FlowIntensity != nil && !entry.FlowIntensity.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidFlowIntensity, *entry.FlowIntensity)
	}
	return nil
}

type loadedState struct {
	profile            *models.UserProfile
	periods            []models.PeriodEntry
	dailyLogs          []models.DailyLog
	settings           models.Settings
	onboardingComplete bool
}

func (state *loadedState) decode(key string, raw string) error {
	switch key {
	case models.StateKeyUserProfile:
		if strings.TrimSpace(raw) == "null" {
			return nil
		}
		var profile models.UserProfile
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			return err
		}
		state.profile = &profile
	case models.StateKeyPeriods:
		var periods []models.PeriodEntry
		if err := json.Unmarshal([]byte(raw), &periods); err != nil {
			return err
		}
		if periods != nil {
			state.periods = periods
		}
	case models.StateKeyDailyLogs:
		var logs []models.DailyLog
		if err := json.Unmarshal([]byte(raw), &logs); err != nil {
			return err
		}
		if logs != nil {
			state.dailyLogs = logs
		}
	case models.StateKeyTheme:
		theme := models.Theme(strings.TrimSpace(raw))
		var quoted string
		if err := json.Unmarshal([]byte(raw), &quoted); err == nil {
			theme = models.Theme(quoted)
		}
		if theme.IsValid() {
			state.settings.Theme = theme
		}
	case models.StateKeyOnboardingComplete:
		var complete bool
		if err := json.Unmarshal([]byte(raw), &complete); err != nil {
			return err
		}
		state.onboardingComplete = complete
	}
	return nil
}
