package models

import (
	"time"

	"dcfagents/internal/shared/constants"
)

type AiSettingsModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"size:100"`
	SettingKey   string `gorm:"column:setting_key;size:255"`
	PromptAgent1 string `gorm:"column:prompt_agent1;type:text"`
	PromptAgent2 string `gorm:"column:prompt_agent2;type:text"`
	PromptAgent3 string `gorm:"column:prompt_agent3;type:text"`
	PromptAgent4 string `gorm:"column:prompt_agent4;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AiSettingsModel) TableName() string {
	return constants.TableAiSettings
}
