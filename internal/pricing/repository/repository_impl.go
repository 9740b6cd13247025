package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) ListByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]pricingdomain.PriceHistoryEntry, error) {
	var items []pricingdomain.PriceHistoryEntry
	err := db.WithContext(ctx).Raw(
		`SELECT lodge_id, start_period, amount, created_at, updated_at
		 FROM price_history WHERE lodge_id = ? ORDER BY start_period ASC`,
		lodgeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, entry *pricingdomain.PriceHistoryEntry) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE price_history SET amount = ?, updated_at = ?
		 WHERE lodge_id = ? AND start_period = ?`,
		entry.Amount,
		entry.UpdatedAt,
		entry.LodgeID,
		entry.StartPeriod,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO price_history (lodge_id, start_period, amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.LodgeID,
		entry.StartPeriod,
		entry.Amount,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID, startPeriod string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM price_history WHERE lodge_id = ? AND start_period = ?`,
		lodgeID,
		startPeriod,
	)
	return res.RowsAffected, res.Error
}
