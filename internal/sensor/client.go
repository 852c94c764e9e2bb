// Package sensor implements the client for the Emilia-Romagna allerta
// meteo sensor-values API.
package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"idrometria/internal/httpx"
	"idrometria/internal/hydro"
)

// DefaultBaseURL is the public sensor-values endpoint.
const DefaultBaseURL = "https://allertameteo.regione.emilia-romagna.it/o/api/allerta/get-sensor-values-no-time"

// hydrometricVariable selects river-level sensors in the upstream API.
const hydrometricVariable = "254,0,0/1,-,-,-/B13215"

const userAgent = "idrometria"

// Client fetches the current hydrometric station list.
type Client struct {
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker

	// now is replaceable in tests.
	now func() time.Time
}

// NewClient creates a sensor client. baseURL falls back to
// DefaultBaseURL when empty. The upstream contract is single-attempt:
// a non-success status is a hard error with no retry.
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sensor-values",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries: 0,
			},
		},
		circuit: cb,
		now:     time.Now,
	}
}

// FetchSnapshot retrieves the station list aligned to the next
// publication boundary and returns it paired with that timestamp.
func (c *Client) FetchSnapshot(ctx context.Context) (hydro.Snapshot, error) {
	ts := publicationTime(c.now())

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("variabile", hydrometricVariable)
		values.Set("time", strconv.FormatInt(ts.UnixMilli(), 10))

		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return hydro.Snapshot{}, fmt.Errorf("sensor values request failed: %w", err)
	}
	defer resp.Body.Close()

	var stations []hydro.StationRecord
	if err := json.NewDecoder(resp.Body).Decode(&stations); err != nil {
		return hydro.Snapshot{}, fmt.Errorf("unexpected response format from sensor API: %w", err)
	}

	return hydro.Snapshot{
		Timestamp: ts.UTC(),
		Stations:  stations,
	}, nil
}
