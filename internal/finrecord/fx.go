package finrecord

import (
	"github.com/smallbiznis/fincore/internal/finrecord/repository"
	"github.com/smallbiznis/fincore/internal/finrecord/service"
	"go.uber.org/fx"
)

var Module = fx.Module("finrecord.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
