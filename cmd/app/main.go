package main

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/logging"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/objectstore"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/reminder"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/service"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/transport"
)

func main() {
	app := fx.New(
		logging.Module,
		reminder.Module,
		transport.Module,
		fx.Provide(
			config.NewConfig,
			db.NewGormClient,
			service.NewGeneral,
			objectstore.NewClient,
		),
		fx.Invoke(func(*transport.HTTPServer) {}),
		fx.Invoke(func(*reminder.Scheduler) {}),
	)

	app.Run()
}
