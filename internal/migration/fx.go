package migration

import (
	"github.com/lodgeworks/tesoro/internal/config"
	ledgerdomain "github.com/lodgeworks/tesoro/internal/ledger/domain"
	memberdomain "github.com/lodgeworks/tesoro/internal/member/domain"
	lodgedomain "github.com/lodgeworks/tesoro/internal/organization/domain"
	pricingdomain "github.com/lodgeworks/tesoro/internal/pricing/domain"
	"github.com/lodgeworks/tesoro/internal/seed"
	treasurydomain "github.com/lodgeworks/tesoro/internal/treasury/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Versioned migrations are written for postgres; other dialects
			// are for local and test setups where the ORM schema suffices.
			if err := conn.AutoMigrate(
				&lodgedomain.Lodge{},
				&memberdomain.Member{},
				&pricingdomain.PriceHistoryEntry{},
				&ledgerdomain.Entry{},
				&treasurydomain.Entry{},
			); err != nil {
				return err
			}
		}

		if cfg.DefaultLodgeID != 0 {
			return seed.EnsureMainLodgeWithID(conn, cfg.DefaultLodgeID)
		}
		return seed.EnsureMainLodge(conn)
	}),
)
