package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/clock"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/config"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/migration"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/observability"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/server"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Domain modules are wired inside server.Module.
		server.Module,
		migration.Module,
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
