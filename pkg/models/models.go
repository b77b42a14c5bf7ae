package models

import "time"

// Outcome is one side of a market: a team name and its American-odds price.
// Negative price marks the favorite, positive the underdog.
type Outcome struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Market is a single bet type offered by a bookmaker. Only the "h2h"
// (head-to-head moneyline) market is consumed by the analyzer.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Bookmaker is one sportsbook's set of markets for a game.
type Bookmaker struct {
	Key     string   `json:"key"`
	Markets []Market `json:"markets"`
}

// Game is a single upcoming or in-progress matchup as delivered by the
// upstream odds provider. Field names match The Odds API v4 wire format.
type Game struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Confidence is the tier assigned to a pick by the analyzer.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Pick is a betting recommendation derived from a game's moneyline prices.
// Odds always equals the moneyline price of the picked team.
type Pick struct {
	GameID         string     `json:"gameId"`
	HomeTeam       string     `json:"homeTeam"`
	AwayTeam       string     `json:"awayTeam"`
	Pick           string     `json:"pick"`
	Confidence     Confidence `json:"confidence"`
	Reasoning      string     `json:"reasoning"`
	RecommendedBet string     `json:"recommendedBet"`
	Odds           int        `json:"odds"`
}

// Opponent returns the team the pick is against.
func (p Pick) Opponent() string {
	if p.Pick == p.HomeTeam {
		return p.AwayTeam
	}
	return p.HomeTeam
}

// GameData is the cached unit of work: the fetched games, the derived picks,
// and the time the bundle was computed.
type GameData struct {
	Games       []Game    `json:"games"`
	TopPicks    []Pick    `json:"topPicks"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ModelAccuracy describes the heuristic's track record. The values are fixed
// configuration, not computed from results.
type ModelAccuracy struct {
	Overall   float64 `json:"overall"`
	LastWeek  float64 `json:"lastWeek"`
	LastMonth float64 `json:"lastMonth"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleSystem    = "system"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in a conversation. All history lives client-side;
// the server keeps no state between calls.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the reply from POST /api/chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the JSON body of any non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
