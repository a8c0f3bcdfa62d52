package main

import (
	"log"

	"SDRAdmin/internal/bootstrap"
	"SDRAdmin/internal/config"
	pkg "SDRAdmin/pkg/routes"

	"go.uber.org/fx"
)

func main() {
	loaded, err := bootstrap.Loadenv()
	if err != nil {
		log.Fatalf("read env file: %v", err)
	}
	if len(loaded) == 0 {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(bootstrap.NewLogger),
		fx.WithLogger(bootstrap.FxLogger),
		pkg.EchoModules,
	)

	app.Run()
}
