package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() treasurydomain.Repository {
	return &repo{}
}

const entryColumns = `id, lodge_id, entry_date, type, category, description,
	COALESCE(amount, 0) AS amount, allocations, created_by, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *treasurydomain.Entry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO treasury_entries (id, lodge_id, entry_date, type, category,
			description, amount, allocations, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.LodgeID,
		e.Date,
		e.Type,
		e.Category,
		e.Description,
		e.Amount,
		e.Allocations,
		e.CreatedBy,
		e.CreatedAt,
		e.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, lodgeID, id snowflake.ID) (*treasurydomain.Entry, error) {
	var e treasurydomain.Entry
	err := db.WithContext(ctx).Raw(
		`SELECT `+entryColumns+` FROM treasury_entries WHERE lodge_id = ? AND id = ?`,
		lodgeID,
		id,
	).Scan(&e).Error
	if err != nil {
		return nil, err
	}
	if e.ID == 0 {
		return nil, nil
	}
	return &e, nil
}

func (r *repo) ListByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]treasurydomain.Entry, error) {
	var items []treasurydomain.Entry
	err := db.WithContext(ctx).Raw(
		`SELECT `+entryColumns+` FROM treasury_entries
		 WHERE lodge_id = ? ORDER BY entry_date DESC, created_at DESC`,
		lodgeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, e *treasurydomain.Entry) error {
	return db.WithContext(ctx).Exec(
		`UPDATE treasury_entries SET entry_date = ?, type = ?, category = ?,
			description = ?, amount = ?, allocations = ?, updated_at = ?
		 WHERE lodge_id = ? AND id = ?`,
		e.Date,
		e.Type,
		e.Category,
		e.Description,
		e.Amount,
		e.Allocations,
		e.UpdatedAt,
		e.LodgeID,
		e.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, lodgeID, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM treasury_entries WHERE lodge_id = ? AND id = ?`,
		lodgeID,
		id,
	)
	return res.RowsAffected, res.Error
}
