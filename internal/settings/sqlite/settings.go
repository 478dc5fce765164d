package sqlite

import (
	"errors"

	"github.com/agenticsoft/gescom/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository implements settings.RepositoryAPI using GORM.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) settings.RepositoryAPI {
	return &SettingsRepository{db: db}
}

// InsertIfAbsent inserts the pair only when the key does not exist yet.
func (r *SettingsRepository) InsertIfAbsent(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&settings.Setting{Key: key, Value: value}).Error
}

func (r *SettingsRepository) Get(key string) (string, bool, error) {
	var setting settings.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

func (r *SettingsRepository) Upsert(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settings.Setting{Key: key, Value: value}).Error
}

func (r *SettingsRepository) All() ([]settings.Setting, error) {
	var all []settings.Setting
	err := r.db.Order("key").Find(&all).Error
	return all, err
}
