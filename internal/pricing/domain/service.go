package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type AddRequest struct {
	StartPeriod string
	Amount      decimal.Decimal
}

type UpdateRequest struct {
	OldStartPeriod string
	StartPeriod    string
	Amount         decimal.Decimal
}

// Service manages a lodge's dues price table. The lodge is taken from the
// request context.
type Service interface {
	List(ctx context.Context) ([]PriceHistoryEntry, error)
	ListForLodge(ctx context.Context, lodgeID snowflake.ID) ([]PriceHistoryEntry, error)
	Add(ctx context.Context, req AddRequest) error
	Update(ctx context.Context, req UpdateRequest) error
	Remove(ctx context.Context, startPeriod string) error
}
