package models

import (
	"time"

	"dcfagents/internal/shared/constants"
)

type RoleModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"uniqueIndex;not null;size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RoleModel) TableName() string {
	return constants.TableRoles
}
