// Package cache holds the process-wide game-data bundle behind a TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dugout-labs/games-service/internal/providers"
	"github.com/dugout-labs/games-service/pkg/models"
)

// DefaultTTL is how long a computed bundle stays fresh.
const DefaultTTL = 6 * time.Hour

// ErrDataUnavailable reports that the upstream game source could not be
// reached and no recomputation happened.
var ErrDataUnavailable = errors.New("game data unavailable")

// Analyzer derives picks from a slate of games.
type Analyzer func(ctx context.Context, games []models.Game) ([]models.Pick, error)

// Cache memoizes one GameData bundle for a TTL window. A stale read fetches
// games from the source, runs the analyzer, and stores the result; concurrent
// stale readers share a single recomputation. A failed recomputation leaves
// the previous bundle in place.
type Cache struct {
	source  providers.Source
	analyze Analyzer
	ttl     time.Duration
	now     func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	bundle    *models.GameData
	fetchedAt time.Time
}

// New creates a cache. ttl <= 0 selects DefaultTTL; now may be nil, in which
// case time.Now is used.
func New(source providers.Source, analyze Analyzer, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		source:  source,
		analyze: analyze,
		ttl:     ttl,
		now:     now,
	}
}

// Bundle returns the cached bundle, recomputing it first if stale or empty.
func (c *Cache) Bundle(ctx context.Context) (*models.GameData, error) {
	if bundle, ok := c.fresh(); ok {
		return bundle, nil
	}

	v, err, _ := c.group.Do("bundle", func() (interface{}, error) {
		// Another caller may have finished the recompute while this one
		// waited on the flight group.
		if bundle, ok := c.fresh(); ok {
			return bundle, nil
		}
		// The flight's result is shared by every waiter, so the
		// recomputation must not die with the leader's request.
		return c.recompute(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.GameData), nil
}

// Invalidate forces the next Bundle call to recompute.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}

// fresh returns the held bundle if it is still within the TTL window.
func (c *Cache) fresh() (*models.GameData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.bundle == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.bundle, true
}

// recompute fetches a new slate, derives picks, and swaps in a new bundle.
func (c *Cache) recompute(ctx context.Context) (*models.GameData, error) {
	log.Printf("[cache] Fetching fresh game data")

	games, err := c.source.FetchGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching games: %v", ErrDataUnavailable, err)
	}

	picks, err := c.analyze(ctx, games)
	if err != nil {
		return nil, fmt.Errorf("analyzing games: %w", err)
	}

	bundle := &models.GameData{
		Games:       games,
		TopPicks:    picks,
		LastUpdated: c.now(),
	}

	c.mu.Lock()
	c.bundle = bundle
	c.fetchedAt = c.now()
	c.mu.Unlock()

	log.Printf("[cache] Cached %d games, %d picks", len(games), len(picks))
	return bundle, nil
}
