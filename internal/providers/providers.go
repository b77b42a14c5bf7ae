// Package providers defines the upstream game-source contract shared by the
// real Odds API client and the development fixture source.
package providers

import (
	"context"

	"github.com/dugout-labs/games-service/pkg/models"
)

// Source fetches the current slate of games with odds from an upstream
// provider. Implementations must be safe for concurrent use.
type Source interface {
	FetchGames(ctx context.Context) ([]models.Game, error)
}
