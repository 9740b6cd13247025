package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, lodge *Lodge) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Lodge, error)
	List(ctx context.Context, db *gorm.DB) ([]Lodge, error)
	Update(ctx context.Context, db *gorm.DB, lodge *Lodge) error
}
