package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dugout-labs/games-service/internal/cache"
	"github.com/dugout-labs/games-service/internal/chat"
	"github.com/dugout-labs/games-service/internal/handlers"
	"github.com/dugout-labs/games-service/internal/providers"
	"github.com/dugout-labs/games-service/internal/providers/mock"
	"github.com/dugout-labs/games-service/pkg/models"
)

type failingSource struct{}

func (failingSource) FetchGames(ctx context.Context) ([]models.Game, error) {
	return nil, errors.New("upstream down")
}

func passthroughAnalyzer(ctx context.Context, games []models.Game) ([]models.Pick, error) {
	picks := make([]models.Pick, 0, len(games))
	for _, g := range games {
		picks = append(picks, models.Pick{
			GameID:     g.ID,
			HomeTeam:   g.HomeTeam,
			AwayTeam:   g.AwayTeam,
			Pick:       g.HomeTeam,
			Confidence: models.ConfidenceHigh,
			Odds:       -200,
		})
	}
	return picks, nil
}

func newHandler(src providers.Source) *handlers.Handler {
	c := cache.New(src, passthroughAnalyzer, 6*time.Hour, nil)
	return handlers.NewHandler(c, chat.NewResponder())
}

func TestGetGames_OK(t *testing.T) {
	h := newHandler(mock.New(nil))

	req := httptest.NewRequest("GET", "/api/games", nil)
	rec := httptest.NewRecorder()
	h.GetGames(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var bundle models.GameData
	if err := json.NewDecoder(rec.Body).Decode(&bundle); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(bundle.Games) != 2 {
		t.Errorf("expected 2 games, got %d", len(bundle.Games))
	}
	if len(bundle.TopPicks) != 2 {
		t.Errorf("expected 2 picks, got %d", len(bundle.TopPicks))
	}
	if bundle.LastUpdated.IsZero() {
		t.Error("lastUpdated missing")
	}
}

func TestGetGames_Unavailable(t *testing.T) {
	h := newHandler(failingSource{})

	req := httptest.NewRequest("GET", "/api/games", nil)
	rec := httptest.NewRecorder()
	h.GetGames(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error != "Failed to fetch game data" {
		t.Errorf("error = %q, want %q", resp.Error, "Failed to fetch game data")
	}
}

func postChat(t *testing.T, h *handlers.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.PostChat(rec, req)
	return rec
}

func TestPostChat_KeywordReply(t *testing.T) {
	h := newHandler(mock.New(nil))

	rec := postChat(t, h, `{"messages":[{"role":"user","content":"How are the Yankees looking?"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !strings.Contains(resp.Response, "I give the Yankees a 62% chance to win") {
		t.Errorf("unexpected response: %q", resp.Response)
	}
}

func TestPostChat_Fallback(t *testing.T) {
	h := newHandler(mock.New(nil))

	rec := postChat(t, h, `{"messages":[{"role":"user","content":"tell me a joke"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Response != chat.Fallback {
		t.Errorf("response = %q, want fallback", resp.Response)
	}
}

func TestPostChat_MalformedBody(t *testing.T) {
	h := newHandler(mock.New(nil))

	rec := postChat(t, h, `{"messages": not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPostChat_NoUserMessage(t *testing.T) {
	h := newHandler(mock.New(nil))

	rec := postChat(t, h, `{"messages":[{"role":"system","content":"be helpful"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error != "no user message to reply to" {
		t.Errorf("error = %q", resp.Error)
	}
}
