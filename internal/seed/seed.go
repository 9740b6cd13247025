package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	lodgedomain "github.com/lodgeworks/tesoro/internal/organization/domain"
	"gorm.io/gorm"
)

const (
	defaultLodgeName        = "Main"
	defaultLodgeDescription = "Default lodge"
)

// EnsureMainLodge seeds the default lodge for startup bootstrap.
func EnsureMainLodge(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainLodgeTx(ctx, tx, node.Generate())
		return err
	})
}

// EnsureMainLodgeWithID seeds the default lodge under a fixed identifier so
// deployments can pin the lodge referenced by imported data.
func EnsureMainLodgeWithID(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureMainLodgeTx(ctx, tx, snowflake.ID(id))
		return err
	})
}

func ensureMainLodgeTx(ctx context.Context, tx *gorm.DB, id snowflake.ID) (lodgedomain.Lodge, error) {
	var lodge lodgedomain.Lodge
	err := tx.WithContext(ctx).Where("is_default = ?", true).First(&lodge).Error
	if err == nil {
		return lodge, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return lodge, err
	}
	now := time.Now().UTC()
	lodge = lodgedomain.Lodge{
		ID:          id,
		Name:        defaultLodgeName,
		Description: defaultLodgeDescription,
		IsDefault:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.WithContext(ctx).Create(&lodge).Error; err != nil {
		return lodge, err
	}
	return lodge, nil
}
