package workorderpart

import (
	"github.com/fleetline/taller/internal/workorderpart/repository"
	"github.com/fleetline/taller/internal/workorderpart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workorderpart.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
