package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() memberdomain.Repository {
	return &repo{}
}

const memberColumns = `id, lodge_id, name, email, active, lodge_role,
	join_date, masonic_join_date, rejoin_date, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *memberdomain.Member) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO members (id, lodge_id, name, email, active, lodge_role,
			join_date, masonic_join_date, rejoin_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.LodgeID,
		m.Name,
		m.Email,
		m.Active,
		m.LodgeRole,
		m.JoinDate,
		m.MasonicJoinDate,
		m.RejoinDate,
		m.CreatedAt,
		m.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*memberdomain.Member, error) {
	var m memberdomain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT `+memberColumns+` FROM members WHERE id = ?`,
		id,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) ListByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]memberdomain.Member, error) {
	var items []memberdomain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT `+memberColumns+` FROM members WHERE lodge_id = ? ORDER BY name ASC`,
		lodgeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]memberdomain.Member, error) {
	var items []memberdomain.Member
	err := db.WithContext(ctx).Raw(
		`SELECT `+memberColumns+` FROM members WHERE lodge_id = ? AND active ORDER BY name ASC`,
		lodgeID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *memberdomain.Member) error {
	return db.WithContext(ctx).Exec(
		`UPDATE members SET name = ?, email = ?, active = ?, lodge_role = ?,
			join_date = ?, masonic_join_date = ?, rejoin_date = ?, updated_at = ?
		 WHERE id = ?`,
		m.Name,
		m.Email,
		m.Active,
		m.LodgeRole,
		m.JoinDate,
		m.MasonicJoinDate,
		m.RejoinDate,
		m.UpdatedAt,
		m.ID,
	).Error
}
