package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/identity-cache/api/internal/config"
	"github.com/octobees/identity-cache/api/internal/database"
	"github.com/octobees/identity-cache/api/internal/handler"
	"github.com/octobees/identity-cache/api/internal/metrics"
	middlewarepkg "github.com/octobees/identity-cache/api/internal/middleware"
	"github.com/octobees/identity-cache/api/internal/repository"
	"github.com/octobees/identity-cache/api/internal/router"
	"github.com/octobees/identity-cache/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	m := metrics.New()

	profilesRepo := repository.NewPGXProfilesRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)

	profilesService := service.NewProfilesService(profilesRepo, cfg.DefaultPhoneRegion, m)
	companiesService := service.NewCompaniesService(companiesRepo, m)

	handlers := router.Handlers{
		Profiles:  handler.NewProfilesHandler(profilesService),
		Companies: handler.NewCompaniesHandler(companiesService),
		Docs:      handler.NewDocsHandler(),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(middlewarepkg.Metrics(m))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
