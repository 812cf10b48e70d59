package models

import (
	"time"

	"dcfagents/internal/shared/constants"
)

// PermissionModel intentionally carries no unique index on Name; duplicate
// permission names are allowed.
type PermissionModel struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"not null;size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}
