package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/fleetline/taller/internal/clock"
	"github.com/fleetline/taller/internal/config"
	"github.com/fleetline/taller/internal/migration"
	"github.com/fleetline/taller/internal/observability"
	"github.com/fleetline/taller/internal/server"
	"github.com/fleetline/taller/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
