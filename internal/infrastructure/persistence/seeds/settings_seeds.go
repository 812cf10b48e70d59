package seeds

import (
	"fmt"

	"gorm.io/gorm"

	"dcfagents/internal/infrastructure/persistence/models"
)

// SeedDefaultSettings ensures a single AI settings row exists. The settings
// API is update-only, so without this row there is nothing to update.
func SeedDefaultSettings(db *gorm.DB) error {
	settings := models.AiSettingsModel{
		Name:       "default",
		SettingKey: "dcf-agents",
	}
	if err := db.FirstOrCreate(&settings, models.AiSettingsModel{
		Name: "default",
	}).Error; err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}
	return nil
}
