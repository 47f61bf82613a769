package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	appointmentRepo "slotbook/database/repository/appointment"
	"slotbook/handlers"
	"slotbook/routes"
	"slotbook/services/intelligence"
	"slotbook/services/scheduling"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	utils.StartHealthMonitor(utils.GetRedisClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Persistence: the whole schedule lives under one Redis key, loaded once
	// at startup and rewritten after every mutation.
	repo := appointmentRepo.NewRedisAppointmentRepo(utils.GetRedisClient(), config.AppConfig.ScheduleKey)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := scheduling.NewStore(loadCtx, repo, logger)
	cancelLoad()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load schedule: %v", err)
	}

	scheduleService := scheduling.NewScheduleService(store, logger)

	// The oracle is optional: no API key means suggestions stay disabled and
	// the rest of the service runs normally.
	var oracle intelligence.Oracle
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := intelligence.NewGeminiOracle(context.Background(), key)
		if err != nil {
			logger.Sugar().Warnf("main: suggestion oracle init failed, suggestions disabled: %v", err)
		} else {
			oracle = gemini
			defer gemini.Close()
		}
	} else {
		logger.Info("main: no Gemini API key configured, suggestions disabled")
	}
	suggestionService := intelligence.NewSuggestionService(
		oracle,
		scheduleService,
		time.Duration(config.AppConfig.SuggestTimeoutSeconds)*time.Second,
		logger,
	)

	scheduleHandler := handlers.NewScheduleHandler(scheduleService, logger)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, logger)

	routes.RegisterRoutes(router, scheduleHandler, suggestionHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
