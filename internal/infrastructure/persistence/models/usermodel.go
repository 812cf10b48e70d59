// Package models holds the GORM persistence models. These are the
// anti-corruption layer between domain entities and database rows.
package models

import (
	"time"

	"dcfagents/internal/shared/constants"
)

type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string `gorm:"not null;size:255"`
	Firstname    string `gorm:"size:100"`
	Lastname     string `gorm:"size:100"`
	Language     string `gorm:"size:10;default:en"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
