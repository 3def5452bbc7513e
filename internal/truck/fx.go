package truck

import (
	"github.com/fleetline/taller/internal/truck/repository"
	"github.com/fleetline/taller/internal/truck/service"
	"go.uber.org/fx"
)

var Module = fx.Module("truck.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
