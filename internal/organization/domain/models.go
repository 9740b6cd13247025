// Package domain contains persistence models for the lodge service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Lodge represents one club-like organization whose roster and treasury are
// tracked independently.
type Lodge struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	IsDefault   bool         `gorm:"column:is_default" json:"is_default"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Lodge) TableName() string { return "lodges" }
