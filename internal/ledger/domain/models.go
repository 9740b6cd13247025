// Package domain contains the per-member dues ledger model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Status is a display label for a ledger entry. It is never the source of
// truth for arithmetic: debt is always amount + extra_amount - paid.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// Entry is one member's billing record for one period. Keyed by
// (member_id, period); exactly one entry may exist per pair.
type Entry struct {
	MemberID         snowflake.ID    `gorm:"column:member_id;primaryKey" json:"member_id"`
	Period           string          `gorm:"type:text;primaryKey" json:"period"`
	LodgeID          snowflake.ID    `gorm:"column:lodge_id;not null;index" json:"lodge_id"`
	Amount           decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	ExtraAmount      decimal.Decimal `gorm:"column:extra_amount;type:numeric;not null" json:"extra_amount"`
	ExtraDescription string          `gorm:"column:extra_description;type:text" json:"extra_description"`
	Paid             decimal.Decimal `gorm:"type:numeric;not null" json:"paid"`
	Status           Status          `gorm:"type:text;not null" json:"status"`
	Comments         string          `gorm:"type:text" json:"comments"`
	PaymentDate      *string         `gorm:"column:payment_date;type:text" json:"payment_date,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "ledger_entries" }

// Billed returns the total owed for the period, surcharges included.
func (e Entry) Billed() decimal.Decimal {
	return e.Amount.Add(e.ExtraAmount)
}

// Debt returns the outstanding balance for the period.
func (e Entry) Debt() decimal.Decimal {
	return e.Billed().Sub(e.Paid)
}

// StatusFor derives the display label from the billed and received amounts.
func StatusFor(billed, paid decimal.Decimal) Status {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(billed):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	default:
		return StatusPending
	}
}

// PaidRecord is the slice of a ledger entry the treasury view needs to
// synthesize quota pseudo-transactions.
type PaidRecord struct {
	MemberID    snowflake.ID    `gorm:"column:member_id"`
	MemberName  string          `gorm:"column:member_name"`
	Period      string          `gorm:"column:period"`
	Paid        decimal.Decimal `gorm:"column:paid"`
	PaymentDate *string         `gorm:"column:payment_date"`
}
