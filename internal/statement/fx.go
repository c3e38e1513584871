package statement

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/fincore/internal/config"
	"github.com/smallbiznis/fincore/internal/statement/domain"
	"github.com/smallbiznis/fincore/internal/statement/service"
	"go.uber.org/fx"
)

func ProvideConfig(cfg config.Config) domain.Config {
	return domain.Config{
		TaxRate: decimal.NewFromFloat(cfg.TaxRate),
		Epsilon: decimal.NewFromFloat(cfg.BalanceEpsilon),
	}
}

var Module = fx.Module("statement.service",
	fx.Provide(ProvideConfig),
	fx.Provide(service.NewService),
)
