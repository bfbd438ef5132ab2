package main

import (
	"context"
	"log"

	"heartbi/internal/config"
	"heartbi/internal/container"
	"heartbi/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	// Initialize web server
	server, err := ui.NewServer(ui.Options{
		Sessions:       appContainer.Sessions,
		Metrics:        appContainer.Metrics,
		Logger:         appContainer.Logger,
		AssetsDir:      appConfig.Data.AssetsDir,
		MaxUploadBytes: appConfig.Data.MaxUploadBytes,
		CORSOrigins:    appConfig.Server.CORSOrigins,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof + metrics server
	if appConfig.Profiling.Enabled {
		go func() {
			if err := ui.StartOps(":"+appConfig.Profiling.Port, appContainer.Metrics, appContainer.Logger); err != nil {
				log.Printf("❌ ops server failed: %v", err)
			}
		}()
	}

	log.Printf("🚀 Starting heart disease dashboard on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
