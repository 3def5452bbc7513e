package invoice

import (
	"github.com/fleetline/taller/internal/invoice/repository"
	"github.com/fleetline/taller/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
