package payment

import (
	"github.com/fleetline/taller/internal/payment/repository"
	"github.com/fleetline/taller/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
