// Package domain contains the lodge treasury model: manual fund
// transactions split across named fund sources, plus the derived
// quota-payment view of the dues ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// FundSource is one of the three buckets a transaction's amount can be
// split across.
type FundSource string

const (
	SourceGeneral FundSource = "general"
	SourceCharity FundSource = "charity"
	SourceQuotas  FundSource = "quotas"
)

// Categories for manual treasury entries.
const (
	CategoryCharityBag       = "charity_bag"
	CategoryExtraFee         = "extra_fee"
	CategoryEvent            = "event"
	CategoryDonation         = "donation"
	CategoryOperatingExpense = "operating_expense"
	CategorySocialExpense    = "social_expense"
	CategorySupplies         = "supplies"
	CategoryOther            = "other"

	// CategoryQuota marks derived dues-payment records in combined views.
	CategoryQuota = "quota"
)

// Allocation assigns part of an entry's amount to one fund source.
type Allocation struct {
	Source FundSource      `json:"source"`
	Amount decimal.Decimal `json:"amount"`
}

// Entry is one manual treasury transaction. An entry with no allocations
// reads as a single implicit allocation of its full amount to the general
// fund.
type Entry struct {
	ID          snowflake.ID                     `gorm:"primaryKey" json:"id"`
	LodgeID     snowflake.ID                     `gorm:"column:lodge_id;not null;index" json:"lodge_id"`
	Date        string                           `gorm:"column:entry_date;type:text;not null" json:"date"`
	Type        TransactionType                  `gorm:"type:text;not null" json:"type"`
	Category    string                           `gorm:"type:text;not null" json:"category"`
	Description string                           `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal                  `gorm:"type:numeric;not null" json:"amount"`
	Allocations datatypes.JSONSlice[Allocation]  `gorm:"type:jsonb" json:"allocations"`
	CreatedBy   snowflake.ID                     `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time                        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "treasury_entries" }

// EffectiveAllocations returns the entry's splits, materializing the
// implicit general-fund allocation when none are recorded.
func (e Entry) EffectiveAllocations() []Allocation {
	if len(e.Allocations) == 0 {
		return []Allocation{{Source: SourceGeneral, Amount: e.Amount}}
	}
	return e.Allocations
}

// UnscheduledDate marks a quota payment recorded without a payment date.
// It is not a calendar date; combined views carry it verbatim.
const UnscheduledDate = "unscheduled"

// HistoryItem is one row of the combined treasury view: either a manual
// entry or a derived, read-only quota pseudo-transaction.
type HistoryItem struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Allocations []Allocation    `json:"allocations"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	Derived     bool            `json:"derived"`
}

// Balances are point-in-time fund totals.
type Balances struct {
	General decimal.Decimal `json:"general"`
	Charity decimal.Decimal `json:"charity"`
	Quotas  decimal.Decimal `json:"quotas"`
}

// Financials are income/expense totals over a date range.
type Financials struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ValidType reports whether t is a known transaction type.
func ValidType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// ValidSource reports whether s is a known fund source.
func ValidSource(s FundSource) bool {
	return s == SourceGeneral || s == SourceCharity || s == SourceQuotas
}
