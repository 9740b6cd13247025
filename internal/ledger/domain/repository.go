package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]Entry, error)
	Insert(ctx context.Context, db *gorm.DB, entry *Entry) error
	// UpdateAmount corrects the base dues of an unpaid entry, leaving every
	// other field untouched.
	UpdateAmount(ctx context.Context, db *gorm.DB, memberID snowflake.ID, period string, amount decimal.Decimal) error
	// AddExtraFee increments extra_amount and overwrites extra_description.
	// Returns the number of rows touched; zero means no entry exists yet.
	AddExtraFee(ctx context.Context, db *gorm.DB, memberID snowflake.ID, period string, amount decimal.Decimal, description string) (int64, error)
	Update(ctx context.Context, db *gorm.DB, entry *Entry) error
	Delete(ctx context.Context, db *gorm.DB, memberID snowflake.ID, period string) (int64, error)

	SumPaidByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) (decimal.Decimal, error)
	SumPaidByLodgeBetween(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID, startDate, endDate string) (decimal.Decimal, error)
	SumDebtByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) (decimal.Decimal, error)
	ListPaidByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]PaidRecord, error)
}
