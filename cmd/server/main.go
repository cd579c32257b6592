package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"travel-risk-orchestrator/internal/adapter/accuweather"
	"travel-risk-orchestrator/internal/adapter/gemini"
	"travel-risk-orchestrator/internal/adapter/repository"
	"travel-risk-orchestrator/internal/adapter/riskhttp"
	"travel-risk-orchestrator/internal/infra/config"
	"travel-risk-orchestrator/internal/infra/httpclient"
	"travel-risk-orchestrator/internal/infra/logger"
	"travel-risk-orchestrator/internal/usecase"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New()
	slog.SetDefault(log)

	// 3. Initialize Destination Registry
	registry := repository.NewDestinationRegistry()
	if cfg.DestinationsFile != "" {
		loaded, err := repository.NewDestinationRegistryFromFile(cfg.DestinationsFile)
		if err != nil {
			log.Error("failed to load destinations file", "error", err)
			os.Exit(1)
		}
		registry = loaded
	}

	// 4. Initialize Adapters
	forecastClient := accuweather.NewClient(
		cfg.Forecast.BaseURL,
		cfg.Forecast.APIKey,
		cfg.Forecast.HorizonDays,
		httpclient.NewPooledClient(15*time.Second),
		log,
	)
	modelClient := gemini.NewClient(
		cfg.Model.Endpoint,
		cfg.Model.APIKey,
		cfg.Model.Model,
		httpclient.NewPooledClient(60*time.Second),
		log,
	)

	// 5. Initialize Usecases
	generateUsecase := usecase.NewGenerateReportUsecase(
		forecastClient,
		usecase.NewRiskPromptBuilder(),
		modelClient,
		usecase.NewOutputValidator(),
		usecase.NewRiskCorrector(log),
		log,
	)
	reportService := usecase.NewReportService(
		generateUsecase,
		registry,
		cfg.Cache.Size,
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		log,
	)

	// 6. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// 7. Register Handlers
	handler := riskhttp.NewHandler(reportService, registry, repository.NewItineraryStore(), forecastClient)
	handler.Register(e)

	// 8. Health Checks
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if cfg.Forecast.APIKey == "" || cfg.Model.APIKey == "" {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "missing upstream credentials"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// 9. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Info("Starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
