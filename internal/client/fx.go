package client

import (
	"github.com/fleetline/taller/internal/client/repository"
	"github.com/fleetline/taller/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
