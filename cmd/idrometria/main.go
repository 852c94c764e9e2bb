package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "idrometria/internal/api/http"
	"idrometria/internal/config"
	"idrometria/internal/hydro"
	"idrometria/internal/retrieval"
	"idrometria/internal/sensor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	fetcher := sensor.NewClient(httpClient, cfg.SensorBaseURL)

	var retriever hydro.NameRetriever
	if cfg.RetrievalEnabled() {
		rcfg := cfg.RetrievalConfig()
		rcfg.Client = httpClient
		retriever = retrieval.NewClient(rcfg)
		log.Printf("retrieval fallback enabled (model %s)", rcfg.Model)
	} else {
		log.Printf("retrieval fallback disabled; resolving locally only")
	}

	service := hydro.NewService(fetcher, retriever)

	app := fiber.New(fiber.Config{
		AppName:               httpapi.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.NewErrorHandler(),
	})

	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
