package db

import (
	"time"

	"github.com/terraincognita07/herflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRepository persists whole-collection JSON values under logical keys.
type StateRepository struct {
	database *gorm.DB
}

func NewStateRepository(database *gorm.DB) *StateRepository {
	return &StateRepository{database: database}
}

func (repo *StateRepository) LoadAll() (map[string]string, error) {
	records := make([]models.StateRecord, 0)
	if err := repo.database.Order("key ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(records))
	for _, record := range records {
		values[record.Key] = record.Value
	}
	return values, nil
}

func (repo *StateRepository) Save(key string, value string) error {
	return upsertStateRecord(repo.database, key, value)
}

// SaveBatch writes every value in one transaction; a nil value deletes its key.
func (repo *StateRepository) SaveBatch(values map[string]*string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if value == nil {
				if err := tx.Where("key = ?", key).Delete(&models.StateRecord{}).Error; err != nil {
					return err
				}
				continue
			}
			if err := upsertStateRecord(tx, key, *value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *StateRepository) DeleteAll() error {
	return repo.database.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.StateRecord{}).Error
}

func upsertStateRecord(database *gorm.DB, key string, value string) error {
	record := models.StateRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}
