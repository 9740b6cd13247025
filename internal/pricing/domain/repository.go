package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]PriceHistoryEntry, error)
	Upsert(ctx context.Context, db *gorm.DB, entry *PriceHistoryEntry) error
	Delete(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID, startPeriod string) (int64, error)
}
