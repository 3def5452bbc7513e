package workordertask

import (
	"github.com/fleetline/taller/internal/workordertask/repository"
	"github.com/fleetline/taller/internal/workordertask/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workordertask.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
