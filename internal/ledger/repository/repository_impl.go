package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ledgerdomain.Repository {
	return &repo{}
}

// Amount columns are read through COALESCE so that a legacy row with a NULL
// or missing value coerces to zero instead of failing the scan.
const entryColumns = `member_id, period, lodge_id,
	COALESCE(amount, 0) AS amount,
	COALESCE(extra_amount, 0) AS extra_amount,
	COALESCE(extra_description, '') AS extra_description,
	COALESCE(paid, 0) AS paid,
	status, COALESCE(comments, '') AS comments, payment_date,
	created_at, updated_at`

func (r *repo) ListByMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) ([]ledgerdomain.Entry, error) {
	var items []ledgerdomain.Entry
	err := db.WithContext(ctx).Raw(
		`SELECT `+entryColumns+` FROM ledger_entries WHERE member_id = ? ORDER BY period ASC`,
		memberID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *ledgerdomain.Entry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO ledger_entries (member_id, period, lodge_id, amount, extra_amount,
			extra_description, paid, status, comments, payment_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.MemberID,
		e.Period,
		e.LodgeID,
		e.Amount,
		e.ExtraAmount,
		e.ExtraDescription,
		e.Paid,
		e.Status,
		e.Comments,
		e.PaymentDate,
		e.CreatedAt,
		e.UpdatedAt,
	).Error
}

func (r *repo) UpdateAmount(ctx context.Context, db *gorm.DB, memberID snowflake.ID, period string, amount decimal.Decimal) error {
	return db.WithContext(ctx).Exec(
		`UPDATE ledger_entries SET amount = ?, updated_at = ?
		 WHERE member_id = ? AND period = ?`,
		amount,
		time.Now().UTC(),
		memberID,
		period,
	).Error
}

func (r *repo) AddExtraFee(ctx context.Context, db *gorm.DB, memberID snowflake.ID, period string, amount decimal.Decimal, description string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE ledger_entries
		 SET extra_amount = COALESCE(extra_amount, 0) + ?, extra_description = ?, updated_at = ?
		 WHERE member_id = ? AND period = ?`,
		amount,
		description,
		time.Now().UTC(),
		memberID,
		period,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, e *ledgerdomain.Entry) error {
	return db.WithContext(ctx).Exec(
		`UPDATE ledger_entries SET amount = ?, extra_amount = ?, extra_description = ?,
			paid = ?, status = ?, comments = ?, payment_date = ?, updated_at = ?
		 WHERE member_id = ? AND period = ?`,
		e.Amount,
		e.ExtraAmount,
		e.ExtraDescription,
		e.Paid,
		e.Status,
		e.Comments,
		e.PaymentDate,
		e.UpdatedAt,
		e.MemberID,
		e.Period,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, memberID snowflake.ID, period string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM ledger_entries WHERE member_id = ? AND period = ?`,
		memberID,
		period,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) SumPaidByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, db,
		`SELECT COALESCE(SUM(COALESCE(paid, 0)), 0) AS total FROM ledger_entries WHERE lodge_id = ?`,
		lodgeID,
	)
}

func (r *repo) SumPaidByLodgeBetween(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID, startDate, endDate string) (decimal.Decimal, error) {
	// Realized-payment-date filtering: the first ten characters of the
	// stored payment timestamp form a YYYY-MM-DD date.
	return r.sumColumn(ctx, db,
		`SELECT COALESCE(SUM(COALESCE(paid, 0)), 0) AS total FROM ledger_entries
		 WHERE lodge_id = ? AND paid > 0 AND payment_date IS NOT NULL
		   AND SUBSTR(payment_date, 1, 10) BETWEEN ? AND ?`,
		lodgeID,
		startDate,
		endDate,
	)
}

func (r *repo) SumDebtByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, db,
		`SELECT COALESCE(SUM(COALESCE(amount, 0) + COALESCE(extra_amount, 0) - COALESCE(paid, 0)), 0) AS total
		 FROM ledger_entries WHERE lodge_id = ?`,
		lodgeID,
	)
}

func (r *repo) ListPaidByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]ledgerdomain.PaidRecord, error) {
	var items []ledgerdomain.PaidRecord
	err := db.WithContext(ctx).Raw(
		`SELECT l.member_id, m.name AS member_name, l.period,
			COALESCE(l.paid, 0) AS paid, l.payment_date
		 FROM ledger_entries l
		 JOIN members m ON m.id = l.member_id
		 WHERE l.lodge_id = ? AND l.paid > 0
		 ORDER BY l.period ASC`,
		lodgeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) sumColumn(ctx context.Context, db *gorm.DB, query string, args ...any) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}
