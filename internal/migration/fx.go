package migration

import (
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/internal/config"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// The migrate driver is postgres-only; other dialects are
			// development conveniences and get the gorm schema directly.
			return conn.AutoMigrate(
				&catalogdomain.Product{},
				&orderdomain.Order{},
				&orderdomain.OrderDetail{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		return RunMigrations(sqlDB)
	}),
)
