// Package client implements the consumer-side source of truth for game data:
// a snapshot store that polls the games endpoint on an interval and is shared
// by every rendering surface.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/dugout-labs/games-service/internal/analysis"
	"github.com/dugout-labs/games-service/pkg/models"
)

// DefaultRefreshInterval is how often the store re-fetches on its own timer.
const DefaultRefreshInterval = 30 * time.Minute

// loadErrMessage is the user-facing string shown for any failed fetch.
const loadErrMessage = "Unable to load game data. Please try again later."

// State is an immutable snapshot of the store, handed to surfaces.
type State struct {
	// Data is nil until the first successful fetch. It is retained across
	// later failures so surfaces can keep showing the last good slate.
	Data     *models.GameData
	Loading  bool
	Err      string
	Summary  string
	Accuracy models.ModelAccuracy
}

// Store polls GET /api/games and holds the latest result. Overlapping
// refreshes (timer plus manual) are coalesced by a request generation
// counter: only the most recently started request's result is applied.
type Store struct {
	baseURL    string
	interval   time.Duration
	httpClient *http.Client

	ready     chan struct{}
	readyOnce sync.Once

	mu         sync.Mutex
	data       *models.GameData
	summary    string
	errMsg     string
	accuracy   models.ModelAccuracy
	inflight   int
	generation uint64
}

// New creates a store polling the service at baseURL. interval <= 0 selects
// DefaultRefreshInterval; httpClient may be nil.
func New(baseURL string, interval time.Duration, httpClient *http.Client) *Store {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Store{
		baseURL:    baseURL,
		interval:   interval,
		httpClient: httpClient,
		ready:      make(chan struct{}),
		accuracy:   analysis.Accuracy(),
	}
}

// Ready returns a channel closed once the first fetch outcome, success or
// failure, has been applied. Callers can wait on it before rendering instead
// of guessing how long the initial fetch takes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Data:     s.data,
		Loading:  s.inflight > 0,
		Err:      s.errMsg,
		Summary:  s.summary,
		Accuracy: s.accuracy,
	}
}

// Run fetches immediately, then keeps the store fresh on the refresh
// interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	log.Printf("[client] Starting refresh loop (every %s)", s.interval)

	if err := s.Refresh(ctx); err != nil {
		log.Printf("[client] Initial fetch failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[client] Stopping refresh loop")
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				log.Printf("[client] Refresh failed: %v", err)
			}
		}
	}
}

// Refresh fetches the bundle now, independent of the timer. It may be called
// from any goroutine; if a newer refresh starts before this one finishes,
// this one's result is discarded and Refresh returns nil.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.inflight++
	s.mu.Unlock()

	data, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	if gen != s.generation {
		// A newer request started while this one was in flight; its result
		// supersedes ours entirely, so there is no outcome to report.
		return nil
	}

	s.readyOnce.Do(func() { close(s.ready) })

	if err != nil {
		s.errMsg = loadErrMessage
		return err
	}

	s.data = data
	s.summary = analysis.GameSummary(data.Games, data.TopPicks)
	s.errMsg = ""
	return nil
}

func (s *Store) fetch(ctx context.Context) (*models.GameData, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/api/games", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("games endpoint error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var data models.GameData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &data, nil
}
