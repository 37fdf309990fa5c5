package services

import (
	"log/slog"
	"time"

	"github.com/terraincognita07/herflow/internal/models"
)

type BackupStore interface {
	Snapshot() models.StateSnapshot
	ApplyBackup(backup DecodedBackup) error
}

type BackupService struct {
	store  BackupStore
	logger *slog.Logger
	now    func() time.Time
}

func NewBackupService(store BackupStore, logger *slog.Logger) *BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Export returns the backup document and its download filename.
func (service *BackupService) Export() ([]byte, string, error) {
	now := service.now()
	payload, err := EncodeBackup(service.store.Snapshot(), now)
	if err != nil {
		return nil, "", err
	}
	return payload, BackupFilename(now), nil
}

// Restore applies a backup document. A malformed document changes nothing.
func (service *BackupService) Restore(raw []byte) error {
	decoded, err := DecodeBackup(raw)
	if err != nil {
		service.logger.Warn("restore rejected", "error", err)
		return err
	}
	if err := service.store.ApplyBackup(decoded); err != nil {
		service.logger.Error("restore failed", "error", err)
		return err
	}

	service.logger.Info("backup restored",
		"profile", decoded.Profile != nil,
		"periods", decoded.HasPeriods,
		"daily_logs", decoded.HasDailyLogs,
		"theme", decoded.Theme != nil,
	)
	return nil
}
