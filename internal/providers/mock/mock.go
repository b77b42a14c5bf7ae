// Package mock provides a fixture game source for development, used whenever
// no Odds API key is configured.
package mock

import (
	"context"
	"time"

	"github.com/dugout-labs/games-service/pkg/models"
)

// Source returns a fixed two-game MLB slate with commence times offset from
// the injected clock.
type Source struct {
	now func() time.Time
}

// New creates a fixture source. now may be nil, in which case time.Now is used.
func New(now func() time.Time) *Source {
	if now == nil {
		now = time.Now
	}
	return &Source{now: now}
}

// FetchGames returns the development slate. It never fails.
func (s *Source) FetchGames(ctx context.Context) ([]models.Game, error) {
	now := s.now()

	return []models.Game{
		{
			ID:           "mlb_123",
			SportKey:     "baseball_mlb",
			CommenceTime: now.Add(1 * time.Hour),
			HomeTeam:     "New York Yankees",
			AwayTeam:     "Boston Red Sox",
			Bookmakers: []models.Bookmaker{
				{
					Key: "draftkings",
					Markets: []models.Market{
						{
							Key: "h2h",
							Outcomes: []models.Outcome{
								{Name: "New York Yankees", Price: -150},
								{Name: "Boston Red Sox", Price: 130},
							},
						},
					},
				},
			},
		},
		{
			ID:           "mlb_124",
			SportKey:     "baseball_mlb",
			CommenceTime: now.Add(2 * time.Hour),
			HomeTeam:     "Los Angeles Dodgers",
			AwayTeam:     "San Francisco Giants",
			Bookmakers: []models.Bookmaker{
				{
					Key: "draftkings",
					Markets: []models.Market{
						{
							Key: "h2h",
							Outcomes: []models.Outcome{
								{Name: "Los Angeles Dodgers", Price: -200},
								{Name: "San Francisco Giants", Price: 170},
							},
						},
					},
				},
			},
		},
	}, nil
}
