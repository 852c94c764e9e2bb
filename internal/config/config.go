package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"idrometria/internal/retrieval"
	"idrometria/internal/sensor"
)

// AppConfig is the explicit configuration both binaries are built from.
// Everything comes from the environment (plus an optional .env file);
// nothing else in the codebase reads process state.
type AppConfig struct {
	// Port the HTTP surface listens on.
	Port string

	// SensorBaseURL overrides the upstream sensor endpoint, mainly
	// for tests.
	SensorBaseURL string

	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration

	// Retrieval fallback settings. The fallback only engages when both
	// the API key and the vector store id are present.
	OpenAIAPIKey          string
	OpenAIVectorStoreID   string
	OpenAIModel           string
	OpenAIBaseURL         string
	OpenAIVectorStoreName string
	OpenAIBeta            string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:          getenvDefault("PORT", "8787"),
		SensorBaseURL: getenvDefault("SENSOR_BASE_URL", sensor.DefaultBaseURL),

		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIVectorStoreID:   os.Getenv("OPENAI_VECTOR_STORE_ID"),
		OpenAIModel:           getenvDefault("OPENAI_MODEL", retrieval.DefaultModel),
		OpenAIBaseURL:         getenvDefault("OPENAI_BASE_URL", retrieval.DefaultBaseURL),
		OpenAIVectorStoreName: os.Getenv("OPENAI_VECTOR_STORE_NAME"),
		OpenAIBeta:            os.Getenv("OPENAI_BETA"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// RetrievalConfig assembles the retrieval client configuration.
func (c *AppConfig) RetrievalConfig() retrieval.Config {
	return retrieval.Config{
		APIKey:        c.OpenAIAPIKey,
		VectorStoreID: c.OpenAIVectorStoreID,
		Model:         c.OpenAIModel,
		BaseURL:       c.OpenAIBaseURL,
		Beta:          c.OpenAIBeta,
	}
}

// RetrievalEnabled reports whether the fallback oracle is configured.
func (c *AppConfig) RetrievalEnabled() bool {
	return c.RetrievalConfig().Enabled()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
