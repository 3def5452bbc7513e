package workorder

import (
	"github.com/fleetline/taller/internal/workorder/repository"
	"github.com/fleetline/taller/internal/workorder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workorder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
