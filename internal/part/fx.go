package part

import (
	"github.com/fleetline/taller/internal/part/repository"
	"github.com/fleetline/taller/internal/part/service"
	"go.uber.org/fx"
)

var Module = fx.Module("part.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
