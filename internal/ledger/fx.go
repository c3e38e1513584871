package ledger

import (
	"github.com/smallbiznis/fincore/internal/config"
	"github.com/smallbiznis/fincore/internal/ledger/domain"
	"github.com/smallbiznis/fincore/internal/ledger/service"
	"go.uber.org/fx"
)

// ProvideChart loads the chart of accounts rule set from configuration,
// falling back to the built-in chart. An invalid or ambiguous rule set fails
// application startup rather than misclassifying statements later.
func ProvideChart(cfg config.Config) (domain.Chart, error) {
	if cfg.ChartFile != "" {
		return domain.LoadChartFile(cfg.ChartFile)
	}
	chart := domain.DefaultChart()
	if err := chart.Validate(); err != nil {
		return domain.Chart{}, err
	}
	return chart, nil
}

var Module = fx.Module("ledger.service",
	fx.Provide(ProvideChart),
	fx.Provide(service.NewService),
)
