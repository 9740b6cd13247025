package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PriceHistoryEntry is one step of a lodge's effective-dated dues table.
// The dues in effect for any period is the amount of the entry with the
// greatest start period not after it.
type PriceHistoryEntry struct {
	LodgeID     snowflake.ID    `gorm:"column:lodge_id;primaryKey" json:"lodge_id"`
	StartPeriod string          `gorm:"column:start_period;type:text;primaryKey" json:"start_period"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (PriceHistoryEntry) TableName() string { return "price_history" }
