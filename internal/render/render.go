// Package render turns client snapshots into text surfaces for the
// dashboard: upcoming games, ranked picks, accuracy stats, and the
// loading/error panels.
package render

import (
	"fmt"
	"strings"

	"github.com/dugout-labs/games-service/internal/client"
	"github.com/dugout-labs/games-service/pkg/models"
	"github.com/dugout-labs/games-service/pkg/oddsmath"
)

// LoadingPanel is shown while a fetch is in flight and no data exists yet.
const LoadingPanel = "Loading game data..."

// ErrorPanel renders the error state with its retry hint.
func ErrorPanel(errMsg string) string {
	return fmt.Sprintf("%s\n(press r to retry)", errMsg)
}

// UpcomingGames lists the current slate with moneyline prices.
func UpcomingGames(state client.State) string {
	if panel, done := statusPanel(state); done {
		return panel
	}

	var b strings.Builder
	b.WriteString("Upcoming Games\n")
	for _, game := range state.Data.Games {
		home, away := h2hPrices(game)
		fmt.Fprintf(&b, "  %s (%s) @ %s (%s)  %s\n",
			game.AwayTeam, formatPrice(away),
			game.HomeTeam, formatPrice(home),
			game.CommenceTime.Local().Format("Mon 3:04 PM"))
	}
	if len(state.Data.Games) == 0 {
		b.WriteString("  No games on the slate.\n")
	}
	return b.String()
}

// TopPicks lists the ranked picks with confidence and reasoning.
func TopPicks(state client.State) string {
	if panel, done := statusPanel(state); done {
		return panel
	}

	var b strings.Builder
	b.WriteString("Top Picks\n")
	for i, pick := range state.Data.TopPicks {
		fmt.Fprintf(&b, "  %d. %s (%s) over %s - %s confidence, %s\n",
			i+1, pick.Pick, oddsmath.FormatAmerican(pick.Odds), pick.Opponent(),
			pick.Confidence, pick.RecommendedBet)
		fmt.Fprintf(&b, "     %s\n", pick.Reasoning)
	}
	if len(state.Data.TopPicks) == 0 {
		b.WriteString("  No high-confidence picks today.\n")
	}
	return b.String()
}

// Stats renders the model accuracy widget.
func Stats(state client.State) string {
	acc := state.Accuracy
	return fmt.Sprintf("Model Accuracy\n  Overall: %.0f%%  Last week: %.0f%%  Last month: %.0f%%\n",
		acc.Overall*100, acc.LastWeek*100, acc.LastMonth*100)
}

// PickQuestion builds the templated chat question submitted when a game or
// pick is selected on a surface.
func PickQuestion(homeTeam, awayTeam string) string {
	return fmt.Sprintf("What's your analysis of the %s vs %s game?", homeTeam, awayTeam)
}

// statusPanel returns the loading or error panel when the snapshot has no
// renderable data. Error wins over loading; stale data renders normally.
func statusPanel(state client.State) (string, bool) {
	if state.Err != "" {
		return ErrorPanel(state.Err), true
	}
	if state.Data == nil {
		return LoadingPanel, true
	}
	return "", false
}

// h2hPrices pulls the first bookmaker's h2h prices for display. Zero means
// no price was offered.
func h2hPrices(game models.Game) (home, away int) {
	if len(game.Bookmakers) == 0 {
		return 0, 0
	}
	for _, market := range game.Bookmakers[0].Markets {
		if market.Key != "h2h" {
			continue
		}
		for _, o := range market.Outcomes {
			switch o.Name {
			case game.HomeTeam:
				home = o.Price
			case game.AwayTeam:
				away = o.Price
			}
		}
	}
	return home, away
}

func formatPrice(price int) string {
	if price == 0 {
		return "no line"
	}
	return oddsmath.FormatAmerican(price)
}
