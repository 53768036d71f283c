package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/warungkita/pos/internal/clock"
	"github.com/warungkita/pos/internal/config"
	"github.com/warungkita/pos/internal/migration"
	"github.com/warungkita/pos/internal/observability"
	"github.com/warungkita/pos/internal/server"
	"github.com/warungkita/pos/internal/storage"
	"github.com/warungkita/pos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		storage.Module,
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
