package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dcfagents/internal/domain/setting"
	"dcfagents/internal/infrastructure/persistence/models"
	sharedDB "dcfagents/internal/shared/db"
)

type SettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) setting.Repository {
	return &SettingsRepositoryImpl{db: db}
}

func (r *SettingsRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return sharedDB.GetTxFromContext(ctx, r.db)
}

func (r *SettingsRepositoryImpl) FindAll(ctx context.Context) ([]*setting.AiSettings, error) {
	var settingModels []*models.AiSettingsModel
	if err := r.conn(ctx).Order("id ASC").Find(&settingModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}

	settings := make([]*setting.AiSettings, 0, len(settingModels))
	for _, model := range settingModels {
		s, err := toSettingsEntity(model)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}

	return settings, nil
}

func (r *SettingsRepositoryImpl) GetByID(ctx context.Context, id uint) (*setting.AiSettings, error) {
	var model models.AiSettingsModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return toSettingsEntity(&model)
}

func (r *SettingsRepositoryImpl) Update(ctx context.Context, s *setting.AiSettings) error {
	result := r.conn(ctx).Model(&models.AiSettingsModel{}).
		Where("id = ?", s.ID()).
		Updates(map[string]interface{}{
			"name":          s.Name(),
			"setting_key":   s.Key(),
			"prompt_agent1": s.PromptAgent1(),
			"prompt_agent2": s.PromptAgent2(),
			"prompt_agent3": s.PromptAgent3(),
			"prompt_agent4": s.PromptAgent4(),
			"updated_at":    s.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update settings: %w", result.Error)
	}

	return nil
}

func toSettingsEntity(model *models.AiSettingsModel) (*setting.AiSettings, error) {
	s, err := setting.ReconstructAiSettings(
		model.ID,
		model.Name,
		model.SettingKey,
		model.PromptAgent1,
		model.PromptAgent2,
		model.PromptAgent3,
		model.PromptAgent4,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct settings: %w", err)
	}
	return s, nil
}
