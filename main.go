package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tirescout/adapters/tabular"
	"tirescout/app"
	"tirescout/internal/config"
	"tirescout/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	source := tabular.NewDataReader(appConfig.Data.FilePath, appConfig.Data.SheetName)
	service := app.NewCatalogService(source)

	// A missing or unreadable data file is fatal at startup; later
	// reload failures are surfaced per request instead.
	if _, err := service.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load tire data from %s: %v", appConfig.Data.FilePath, err)
	}

	server := ui.NewServer()
	if err := server.Initialize(service, appConfig); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting tirescout server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
