package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *Member) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Member, error)
	ListByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]Member, error)
	ListActiveByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]Member, error)
	Update(ctx context.Context, db *gorm.DB, member *Member) error
}
