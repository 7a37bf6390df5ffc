package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/mindhaven/internal/buildinfo"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi"
	"github.com/dmitrijs2005/mindhaven/internal/mockapi/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.MustLoad()

	app, err := mockapi.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
