package posting

import (
	"github.com/smallbiznis/fincore/internal/posting/repository"
	"github.com/smallbiznis/fincore/internal/posting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("posting.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
