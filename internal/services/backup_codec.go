package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
)

const (
	backupFilenamePrefix  = "herflow-backup-"
	backupTimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var ErrMalformedBackup = errors.New("malformed backup document")

// BackupDocument is the on-disk layout of a backup file.
type BackupDocument struct {
	UserData   *models.UserProfile  `json:"userData"`
	Periods    []models.PeriodEntry `json:"periods"`
	DailyLogs  []models.DailyLog    `json:"dailyLogs"`
	Theme      models.Theme         `json:"theme"`
	ExportDate string               `json:"exportDate"`
}

// DecodedBackup holds the validated sections found in a backup file.
// Sections that were absent or null are nil / flagged false.
type DecodedBackup struct {
	Profile      *models.UserProfile
	Periods      []models.PeriodEntry
	HasPeriods   bool
	DailyLogs    []models.DailyLog
	HasDailyLogs bool
	Theme        *models.Theme
	ExportedAt   *time.Time
}

type backupWire struct {
	UserData   json.RawMessage `json:"userData"`
	Periods    json.RawMessage `json:"periods"`
	DailyLogs  json.RawMessage `json:"dailyLogs"`
	Theme      json.RawMessage `json:"theme"`
	ExportDate json.RawMessage `json:"exportDate"`
}

// EncodeBackup renders snapshot as an indented JSON backup document.
func EncodeBackup(snapshot models.StateSnapshot, exportedAt time.Time) ([]byte, error) {
	theme := snapshot.Settings.Theme
	if !theme.IsValid() {
		theme = models.DefaultSettings().Theme
	}

	document := BackupDocument{
		UserData:   snapshot.Profile,
		Periods:    snapshot.Periods,
		DailyLogs:  snapshot.DailyLogs,
		Theme:      theme,
		ExportDate: exportedAt.UTC().Format(backupTimestampLayout),
	}
	if document.Periods == nil {
		document.Periods = []models.PeriodEntry{}
	}
	if document.DailyLogs == nil {
		document.DailyLogs = []models.DailyLog{}
	}

	encoded, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return encoded, nil
}

// DecodeBackup parses and validates a backup document. It never returns a
// partially valid result: any bad section fails the whole document.
func DecodeBackup(raw []byte) (DecodedBackup, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return DecodedBackup{}, fmt.Errorf("%w: top level must be an object", ErrMalformedBackup)
	}

	var wire backupWire
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return DecodedBackup{}, fmt.Errorf("%w: %w", ErrMalformedBackup, err)
	}

	decoded := DecodedBackup{}
	recognized := false

	if present(wire.UserData) {
		profile, err := decodeBackupProfile(wire.UserData)
		if err != nil {
			return DecodedBackup{}, err
		}
		decoded.Profile = &profile
		recognized = true
	}
	if present(wire.Periods) {
		periods, err := decodeBackupPeriods(wire.Periods)
		if err != nil {
			return DecodedBackup{}, err
		}
		decoded.Periods = periods
		decoded.HasPeriods = true
		recognized = true
	}
	if present(wire.DailyLogs) {
		logs, err := decodeBackupDailyLogs(wire.DailyLogs)
		if err != nil {
			return DecodedBackup{}, err
		}
		decoded.DailyLogs = logs
		decoded.HasDailyLogs = true
		recognized = true
	}
	if present(wire.Theme) {
		var rawTheme string
		if err := json.Unmarshal(wire.Theme, &rawTheme); err != nil {
			return DecodedBackup{}, fmt.Errorf("%w: theme: %w", ErrMalformedBackup, err)
		}
		theme, err := ParseTheme(rawTheme)
		if err != nil {
			return DecodedBackup{}, fmt.Errorf("%w: %w", ErrMalformedBackup, err)
		}
		decoded.Theme = &theme
		recognized = true
	}
	if present(wire.ExportDate) {
		var stamp string
		if err := json.Unmarshal(wire.ExportDate, &stamp); err == nil {
			if exportedAt, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
				decoded.ExportedAt = &exportedAt
			}
		}
	}

	if !recognized {
		return DecodedBackup{}, fmt.Errorf("%w: no restorable sections", ErrMalformedBackup)
	}
	return decoded, nil
}

// BackupFilename names a backup by its UTC export date.
func BackupFilename(now time.Time) string {
	return backupFilenamePrefix + now.UTC().Format(models.DateLayout) + ".json"
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeBackupProfile(raw json.RawMessage) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: userData: %w", ErrMalformedBackup, err)
	}
	if profile.CycleLength < 0 || profile.PeriodLength < 0 {
		return models.UserProfile{}, fmt.Errorf("%w: userData: negative length", ErrMalformedBackup)
	}
	if profile.CycleLength == 0 {
		profile.CycleLength = models.DefaultCycleLength
	}
	if profile.PeriodLength == 0 {
		profile.PeriodLength = models.DefaultPeriodLength
	}
	return profile, nil
}

func decodeBackupPeriods(raw json.RawMessage) ([]models.PeriodEntry, error) {
	var periods []models.PeriodEntry
	if err := json.Unmarshal(raw, &periods); err != nil {
		return nil, fmt.Errorf("%w: periods: %w", ErrMalformedBackup, err)
	}
	for index, period := range periods {
		if err := validatePeriodEntry(period); err != nil {
			return nil, fmt.Errorf("%w: periods[%d]: %w", ErrMalformedBackup, index, err)
		}
	}
	if periods == nil {
		periods = []models.PeriodEntry{}
	}
	models.SortPeriodsDescending(periods)
	return periods, nil
}

// decodeBackupDailyLogs keeps one log per date; a later duplicate replaces
// the earlier one in place.
func decodeBackupDailyLogs(raw json.RawMessage) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("%w: dailyLogs: %w", ErrMalformedBackup, err)
	}

	result := make([]models.DailyLog, 0, len(logs))
	positions := make(map[models.Date]int, len(logs))
	for index, entry := range logs {
		if entry.Date.IsZero() {
			return nil, fmt.Errorf("%w: dailyLogs[%d]: %w", ErrMalformedBackup, index, ErrDailyLogDateRequired)
		}
		if entry.FlowIntensity != nil && !entry.FlowIntensity.IsValid() {
			return nil, fmt.Errorf("%w: dailyLogs[%d]: %w", ErrMalformedBackup, index, ErrInvalidFlowIntensity)
		}
		entry.WaterIntake = models.ClampWaterIntake(entry.WaterIntake)
		entry.Symptoms = uniqueTags(entry.Symptoms)
		entry.Moods = uniqueTags(entry.Moods)

		if position, seen := positions[entry.Date]; seen {
			result[position] = entry
			continue
		}
		positions[entry.Date] = len(result)
		result = append(result, entry)
	}
	return result, nil
}
