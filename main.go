package main

import (
	"context"
	"log"
	"os"

	"shortboard/cmd"
	"shortboard/internal/blob"
	"shortboard/internal/container"
	"shortboard/internal/logger"
	"shortboard/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer func() { _ = zapLogger.Sync() }()

	blobStore, err := blob.OpenFromEnv()
	if err != nil {
		zapLogger.Fatal("Could not open storage: " + err.Error())
	}

	appContainer := container.NewAppContainer(blobStore, zapLogger)

	if err := appContainer.Store.Seed(context.Background()); err != nil {
		zapLogger.Fatal("Could not seed database: " + err.Error())
	}

	router := gin.Default()
	routes.Register(router, appContainer, zapLogger)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	zapLogger.Info("Starting server on " + host)
	if err := router.Run(host); err != nil {
		panic(err)
	}
}
