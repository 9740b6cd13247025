package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *Entry) error
	FindByID(ctx context.Context, db *gorm.DB, lodgeID, id snowflake.ID) (*Entry, error)
	ListByLodge(ctx context.Context, db *gorm.DB, lodgeID snowflake.ID) ([]Entry, error)
	Update(ctx context.Context, db *gorm.DB, entry *Entry) error
	Delete(ctx context.Context, db *gorm.DB, lodgeID, id snowflake.ID) (int64, error)
}
