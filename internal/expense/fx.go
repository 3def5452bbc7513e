package expense

import (
	"github.com/fleetline/taller/internal/expense/repository"
	"github.com/fleetline/taller/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
