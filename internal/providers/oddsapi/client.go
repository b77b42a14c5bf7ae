// Package oddsapi implements a game source backed by The Odds API v4.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dugout-labs/games-service/pkg/models"
)

const (
	BaseURL = "https://api.the-odds-api.com/v4"

	defaultSportKey = "baseball_mlb"
)

// Client handles The Odds API requests.
type Client struct {
	apiKey     string
	sportKey   string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithSportKey overrides the default baseball_mlb sport.
func WithSportKey(sportKey string) Option {
	return func(c *Client) {
		c.sportKey = sportKey
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// New creates a new Odds API client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		sportKey: defaultSportKey,
		baseURL:  BaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchGames fetches the current odds slate for the configured sport.
func (c *Client) FetchGames(ctx context.Context) ([]models.Game, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, c.sportKey)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", "h2h")
	params.Set("oddsFormat", "american")

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("odds API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var games []models.Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return games, nil
}
