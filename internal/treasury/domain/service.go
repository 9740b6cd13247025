package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Date        string
	Type        TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
	Allocations []Allocation
	CreatedBy   string
}

type UpdateRequest struct {
	ID          string
	Date        string
	Type        TransactionType
	Category    string
	Description string
	Amount      decimal.Decimal
	Allocations []Allocation
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Entry, error)
	Update(ctx context.Context, req UpdateRequest) (*Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)

	// Balances accumulates every manual allocation, signed by transaction
	// type, into its fund bucket; the quotas bucket starts from the sum of
	// all dues payments before manual quota corrections apply.
	Balances(ctx context.Context) (*Balances, error)
	// History merges manual entries with derived quota pseudo-transactions,
	// newest first.
	History(ctx context.Context) ([]HistoryItem, error)
	// GlobalFinancials totals income and expense between two dates,
	// filtering manual entries by entry date and dues inflows by realized
	// payment date.
	GlobalFinancials(ctx context.Context, startDate, endDate string) (*Financials, error)
}
