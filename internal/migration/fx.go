package migration

import (
	accountdomain "github.com/smallbiznis/fincore/internal/account/domain"
	"github.com/smallbiznis/fincore/internal/config"
	finrecorddomain "github.com/smallbiznis/fincore/internal/finrecord/domain"
	postingdomain "github.com/smallbiznis/fincore/internal/posting/domain"
	provisiondomain "github.com/smallbiznis/fincore/internal/provision/domain"
	"github.com/smallbiznis/fincore/internal/seed"
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
			// sqlite and mysql are development targets; the versioned SQL is
			// written for postgres, so let gorm derive the schema there.
			if err := conn.AutoMigrate(
				&accountdomain.Account{},
				&postingdomain.Poliza{},
				&postingdomain.Movement{},
				&finrecorddomain.FinancialRecord{},
				&provisiondomain.ProvisionBudget{},
			); err != nil {
				return err
			}
		}

		if cfg.DefaultCompanyID != 0 {
			return seed.EnsureDefaultAccounts(conn, cfg.DefaultCompanyID)
		}
		return nil
	}),
)
