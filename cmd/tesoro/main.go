package main

import (
	"github.com/lodgeworks/tesoro/internal/clock"
	"github.com/lodgeworks/tesoro/internal/config"
	"github.com/lodgeworks/tesoro/internal/logger"
	"github.com/lodgeworks/tesoro/internal/metrics"
	"github.com/lodgeworks/tesoro/internal/migration"
	"github.com/lodgeworks/tesoro/internal/server"
	"github.com/lodgeworks/tesoro/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		db.Module,
		metrics.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}
