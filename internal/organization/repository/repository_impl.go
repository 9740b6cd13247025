package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	lodgedomain "github.com/lodgeworks/tesoro/internal/organization/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() lodgedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, lodge *lodgedomain.Lodge) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO lodges (id, name, description, is_default, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		lodge.ID,
		lodge.Name,
		lodge.Description,
		lodge.IsDefault,
		lodge.CreatedAt,
		lodge.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*lodgedomain.Lodge, error) {
	var lodge lodgedomain.Lodge
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description, is_default, created_at, updated_at
		 FROM lodges WHERE id = ?`,
		id,
	).Scan(&lodge).Error
	if err != nil {
		return nil, err
	}
	if lodge.ID == 0 {
		return nil, nil
	}
	return &lodge, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]lodgedomain.Lodge, error) {
	var items []lodgedomain.Lodge
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description, is_default, created_at, updated_at
		 FROM lodges ORDER BY created_at ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, lodge *lodgedomain.Lodge) error {
	return db.WithContext(ctx).Exec(
		`UPDATE lodges SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		lodge.Name,
		lodge.Description,
		lodge.UpdatedAt,
		lodge.ID,
	).Error
}
