package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"claimcheck/internal/api"
	"claimcheck/internal/api/handlers"
	"claimcheck/internal/service"
	"claimcheck/internal/state"
	"claimcheck/pkg/config"
	"claimcheck/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration; a missing model credential aborts startup here
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting claimcheck service")

	ctx := context.Background()

	// Initialize the Gemini client shared by field extraction and scoring
	geminiService, err := service.NewGeminiService(ctx, &cfg.Gemini, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini service", zap.Error(err))
	}
	defer geminiService.Close()

	// Initialize pipeline services
	extractService := service.NewExtractService(appLogger)
	fieldService := service.NewFieldService(geminiService, appLogger)
	metadataService := service.NewMetadataService(appLogger)
	consistencyService := service.NewConsistencyService(appLogger)
	visionService := service.NewVisionService(geminiService, appLogger)

	// Single-slot claim session shared by the endpoints
	session := state.NewSession()

	claimHandler := handlers.NewClaimHandler(
		extractService,
		fieldService,
		metadataService,
		consistencyService,
		visionService,
		session,
		appLogger,
	)

	app := api.SetupRouter(claimHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
