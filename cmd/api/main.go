package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"tirescout/adapters/tabular"
	"tirescout/app"
	"tirescout/internal/config"
	"tirescout/ui"
)

// Headless JSON API over the tire catalog, for programmatic consumers
// that do not want the rendered pages.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	source := tabular.NewDataReader(appConfig.Data.FilePath, appConfig.Data.SheetName)
	service := app.NewCatalogService(source)

	if _, err := service.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load tire data from %s: %v", appConfig.Data.FilePath, err)
	}

	api := ui.NewApp(service, appConfig)
	log.Fatal(api.Start())
}
