package analysis_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dugout-labs/games-service/internal/analysis"
	"github.com/dugout-labs/games-service/pkg/models"
)

func h2hGame(id, home, away string, homePrice, awayPrice int) models.Game {
	return models.Game{
		ID:           id,
		SportKey:     "baseball_mlb",
		CommenceTime: time.Now().Add(time.Hour),
		HomeTeam:     home,
		AwayTeam:     away,
		Bookmakers: []models.Bookmaker{
			{
				Key: "draftkings",
				Markets: []models.Market{
					{
						Key: "h2h",
						Outcomes: []models.Outcome{
							{Name: home, Price: homePrice},
							{Name: away, Price: awayPrice},
						},
					},
				},
			},
		},
	}
}

func TestAnalyzeGames_CleanFavorite(t *testing.T) {
	tests := []struct {
		name           string
		game           models.Game
		wantPick       string
		wantConfidence models.Confidence
		wantOdds       int
	}{
		{
			name:           "moderate home favorite",
			game:           h2hGame("mlb_123", "NYY", "BOS", -150, 130),
			wantPick:       "NYY",
			wantConfidence: models.ConfidenceMedium,
			wantOdds:       -150,
		},
		{
			name:           "heavy home favorite",
			game:           h2hGame("mlb_124", "LAD", "SF", -200, 170),
			wantPick:       "LAD",
			wantConfidence: models.ConfidenceHigh,
			wantOdds:       -200,
		},
		{
			name:           "away favorite",
			game:           h2hGame("mlb_125", "OAK", "HOU", 160, -190),
			wantPick:       "HOU",
			wantConfidence: models.ConfidenceHigh,
			wantOdds:       -190,
		},
		{
			name:           "threshold boundary is exclusive",
			game:           h2hGame("mlb_126", "ATL", "PHI", -180, 150),
			wantPick:       "ATL",
			wantConfidence: models.ConfidenceMedium,
			wantOdds:       -180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks, err := analysis.AnalyzeGames(context.Background(), []models.Game{tt.game})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(picks) != 1 {
				t.Fatalf("expected 1 pick, got %d", len(picks))
			}

			pick := picks[0]
			if pick.Pick != tt.wantPick {
				t.Errorf("pick = %q, want %q", pick.Pick, tt.wantPick)
			}
			if pick.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %q, want %q", pick.Confidence, tt.wantConfidence)
			}
			if pick.Odds != tt.wantOdds {
				t.Errorf("odds = %d, want %d", pick.Odds, tt.wantOdds)
			}
			if pick.GameID != tt.game.ID {
				t.Errorf("gameId = %q, want %q", pick.GameID, tt.game.ID)
			}
			if pick.RecommendedBet != "Moneyline" {
				t.Errorf("recommendedBet = %q, want Moneyline", pick.RecommendedBet)
			}
			if !strings.Contains(pick.Reasoning, tt.wantPick) {
				t.Errorf("reasoning %q does not name the favorite %q", pick.Reasoning, tt.wantPick)
			}
		})
	}
}

func TestAnalyzeGames_PickemExcluded(t *testing.T) {
	games := []models.Game{
		h2hGame("mlb_200", "CHC", "STL", 105, 110),   // both positive
		h2hGame("mlb_201", "SEA", "TEX", -105, -110), // both negative (anomaly)
	}

	picks, err := analysis.AnalyzeGames(context.Background(), games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picks) != 0 {
		t.Fatalf("expected pick'em games to be excluded, got %d picks", len(picks))
	}
}

func TestAnalyzeGames_Ordering(t *testing.T) {
	games := []models.Game{
		h2hGame("g1", "A", "B", -150, 130), // Medium
		h2hGame("g2", "C", "D", -220, 180), // High
		h2hGame("g3", "E", "F", -160, 140), // Medium
		h2hGame("g4", "G", "H", -300, 250), // High
	}

	picks, err := analysis.AnalyzeGames(context.Background(), games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var gotIDs []string
	for _, p := range picks {
		gotIDs = append(gotIDs, p.GameID)
	}

	// High picks first, input order preserved within each tier.
	want := []string{"g2", "g4", "g1", "g3"}
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %d picks, got %d", len(want), len(gotIDs))
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("picks[%d] = %s, want %s (full order %v)", i, gotIDs[i], want[i], gotIDs)
		}
	}
}

func TestAnalyzeGames_SkipsUnusableGames(t *testing.T) {
	noBooks := h2hGame("g1", "A", "B", -150, 130)
	noBooks.Bookmakers = nil

	noMarkets := h2hGame("g2", "A", "B", -150, 130)
	noMarkets.Bookmakers[0].Markets = nil

	noH2H := h2hGame("g3", "A", "B", -150, 130)
	noH2H.Bookmakers[0].Markets[0].Key = "spreads"

	missingTeam := h2hGame("g4", "A", "B", -150, 130)
	missingTeam.Bookmakers[0].Markets[0].Outcomes[1].Name = "C"

	picks, err := analysis.AnalyzeGames(context.Background(), []models.Game{noBooks, noMarkets, noH2H, missingTeam})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picks) != 0 {
		t.Fatalf("expected unusable games to be skipped, got %d picks", len(picks))
	}
}

func TestAnalyzeGames_OnlyFirstBookmakerConsulted(t *testing.T) {
	game := h2hGame("g1", "A", "B", -150, 130)
	// Second bookmaker prices the game the other way; it must be ignored.
	game.Bookmakers = append(game.Bookmakers, models.Bookmaker{
		Key: "fanduel",
		Markets: []models.Market{
			{
				Key: "h2h",
				Outcomes: []models.Outcome{
					{Name: "A", Price: 130},
					{Name: "B", Price: -150},
				},
			},
		},
	})

	picks, err := analysis.AnalyzeGames(context.Background(), []models.Game{game})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picks) != 1 || picks[0].Pick != "A" {
		t.Fatalf("expected pick A from first bookmaker, got %+v", picks)
	}
}

func TestAnalyzeGames_Empty(t *testing.T) {
	picks, err := analysis.AnalyzeGames(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picks) != 0 {
		t.Fatalf("expected empty result, got %d picks", len(picks))
	}
}

func TestGameSummary_WithPicks(t *testing.T) {
	games := []models.Game{
		h2hGame("mlb_123", "New York Yankees", "Boston Red Sox", -150, 130),
		h2hGame("mlb_124", "Los Angeles Dodgers", "San Francisco Giants", -200, 170),
	}
	picks, err := analysis.AnalyzeGames(context.Background(), games)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := analysis.GameSummary(games, picks)

	if !strings.Contains(summary, "Today we're tracking 2 MLB games.") {
		t.Errorf("summary missing game count: %q", summary)
	}
	if !strings.Contains(summary, "My top 2 picks are:") {
		t.Errorf("summary missing picks header: %q", summary)
	}
	// Dodgers are the High pick and must be listed first.
	if !strings.Contains(summary, "1. Los Angeles Dodgers (-200) vs San Francisco Giants - High confidence") {
		t.Errorf("summary missing ranked Dodgers pick: %q", summary)
	}
	if !strings.Contains(summary, "2. New York Yankees (-150) vs Boston Red Sox - Medium confidence") {
		t.Errorf("summary missing ranked Yankees pick: %q", summary)
	}
}

func TestGameSummary_NoPicks(t *testing.T) {
	summary := analysis.GameSummary(nil, nil)
	if !strings.Contains(summary, "I don't have any high-confidence picks") {
		t.Errorf("unexpected no-picks summary: %q", summary)
	}
}

func TestAccuracy(t *testing.T) {
	acc := analysis.Accuracy()
	if acc.Overall != 0.63 || acc.LastWeek != 0.71 || acc.LastMonth != 0.66 {
		t.Errorf("unexpected accuracy values: %+v", acc)
	}
}
