// Package retrieval implements the OpenAI file-search fallback used when
// local station-name matching comes up empty. It asks the Responses API,
// bound to a pre-built vector store of station descriptions, for a bare
// JSON array of candidate names.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"idrometria/internal/httpx"
)

const (
	// DefaultBaseURL is the OpenAI API root, overridable for proxies
	// and compatible backends.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gpt-4.1-mini"
)

const systemInstruction = "Return only a JSON array of station names. No extra text or formatting."

// Config carries the credentials and knobs for the retrieval backend.
type Config struct {
	APIKey        string
	VectorStoreID string
	Model         string
	BaseURL       string
	// Beta, when set, is sent as the OpenAI-Beta header.
	Beta string

	Client *http.Client
}

// Enabled reports whether the fallback has everything it needs to run.
func (c Config) Enabled() bool {
	return c.APIKey != "" && c.VectorStoreID != ""
}

// Client talks to the Responses API.
type Client struct {
	cfg     Config
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a retrieval client. Model and BaseURL fall back to
// their defaults when empty.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openai-responses",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		cfg: cfg,
		httpCfg: httpx.ClientConfig{
			Client: cfg.Client,
			Backoff: httpx.BackoffConfig{
				MaxRetries: 0,
			},
		},
		circuit: cb,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolSpec struct {
	Type string `json:"type"`
}

type fileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids"`
}

type responsesRequest struct {
	Model string    `json:"model"`
	Input []message `json:"input"`
	Tools []toolSpec `json:"tools"`
	ToolResources struct {
		FileSearch fileSearchResources `json:"file_search"`
	} `json:"tool_resources"`
	Temperature float64 `json:"temperature"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// RetrieveStationNames asks the oracle for up to maxResults station names
// matching the query. Any transport or parsing problem surfaces as an
// error; the caller decides how to degrade.
func (c *Client) RetrieveStationNames(ctx context.Context, query string, maxResults int) ([]string, error) {
	if !c.cfg.Enabled() {
		return nil, nil
	}

	payload := responsesRequest{
		Model: c.cfg.Model,
		Input: []message{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: fmt.Sprintf("Query: %s. Return up to %d station names.", query, maxResults)},
		},
		Tools:       []toolSpec{{Type: "file_search"}},
		Temperature: 0,
	}
	payload.ToolResources.FileSearch.VectorStoreIDs = []string{c.cfg.VectorStoreID}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.cfg.BaseURL+"/responses", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.Beta != "" {
			req.Header.Set("OpenAI-Beta", c.cfg.Beta)
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}

	names := make([]string, 0, maxResults)
	for _, item := range ParseJSONArray(extractOutputText(parsed)) {
		name := strings.TrimSpace(fmt.Sprint(item))
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) >= maxResults {
			break
		}
	}
	return names, nil
}

// extractOutputText joins the output_text parts of every message item in
// the response, mirroring how the Responses API nests generated text.
func extractOutputText(resp responsesResponse) string {
	var chunks []string
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" && part.Text != "" {
				chunks = append(chunks, strings.TrimSpace(part.Text))
			}
		}
	}
	return strings.TrimSpace(strings.Join(chunks, "\n"))
}
