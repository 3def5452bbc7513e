package mechanic

import (
	"github.com/fleetline/taller/internal/mechanic/repository"
	"github.com/fleetline/taller/internal/mechanic/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mechanic.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
