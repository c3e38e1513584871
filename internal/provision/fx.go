package provision

import (
	"github.com/smallbiznis/fincore/internal/provision/repository"
	"github.com/smallbiznis/fincore/internal/provision/service"
	"go.uber.org/fx"
)

var Module = fx.Module("provision.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
