package main

import (
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	mcpapi "idrometria/internal/api/mcp"
	"idrometria/internal/config"
	"idrometria/internal/hydro"
	"idrometria/internal/retrieval"
	"idrometria/internal/sensor"
)

func main() {
	// Stdout belongs to the MCP transport; everything else goes to
	// stderr via the default logger.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	fetcher := sensor.NewClient(httpClient, cfg.SensorBaseURL)

	var retriever hydro.NameRetriever
	if cfg.RetrievalEnabled() {
		rcfg := cfg.RetrievalConfig()
		rcfg.Client = httpClient
		retriever = retrieval.NewClient(rcfg)
	}

	service := hydro.NewService(fetcher, retriever)

	if err := server.ServeStdio(mcpapi.NewServer(service)); err != nil {
		log.Fatalf("mcp server stopped: %v", err)
	}
}
