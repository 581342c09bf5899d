package registry

import (
	"context"

	"github.com/gdg-garage/contrib-role-api/internal/models"
	"gorm.io/gorm"
)

// GormRegistry persists records so re-check obligations survive restarts.
type GormRegistry struct {
	db *gorm.DB
}

func NewGormRegistry(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

func (r *GormRegistry) Save(ctx context.Context, v models.Verification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Verification
		if err := tx.FirstOrInit(&record, models.Verification{DiscordID: v.DiscordID}).Error; err != nil {
			return err
		}

		record.DiscordUsername = v.DiscordUsername
		record.GitHubUsername = v.GitHubUsername
		record.AccessToken = v.AccessToken
		record.RefreshToken = v.RefreshToken
		record.TokenExpiry = v.TokenExpiry
		record.LastChecked = v.LastChecked
		record.Repositories = v.Repositories

		return tx.Save(&record).Error
	})
}

func (r *GormRegistry) List(ctx context.Context) ([]models.Verification, error) {
	var records []models.Verification
	if err := r.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormRegistry) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Verification{}).Count(&count).Error
	return count, err
}
