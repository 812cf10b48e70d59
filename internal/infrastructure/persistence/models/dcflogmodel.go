package models

import (
	"time"

	"dcfagents/internal/shared/constants"
)

type DcfLogModel struct {
	ID               uint      `gorm:"primarykey"`
	CreatedAt        time.Time `gorm:"index"`
	Username         string    `gorm:"not null;size:50"`
	CompanyName      string    `gorm:"column:company_name;not null;size:255"`
	Description      string    `gorm:"type:text"`
	ValidationStatus string    `gorm:"column:validation_status;size:50"`
}

func (DcfLogModel) TableName() string {
	return constants.TableDcfLogs
}
