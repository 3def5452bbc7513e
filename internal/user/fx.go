package user

import (
	"github.com/fleetline/taller/internal/user/repository"
	"github.com/fleetline/taller/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
