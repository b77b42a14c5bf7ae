package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dugout-labs/games-service/internal/cache"
	"github.com/dugout-labs/games-service/internal/chat"
	"github.com/dugout-labs/games-service/pkg/models"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	cache     *cache.Cache
	responder *chat.Responder
}

// NewHandler creates a new handler.
func NewHandler(c *cache.Cache, responder *chat.Responder) *Handler {
	return &Handler{
		cache:     c,
		responder: responder,
	}
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "games-service",
	})
}

// GetGames serves the cached game bundle, recomputing it if stale.
// GET /api/games
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.cache.Bundle(r.Context())
	if err != nil {
		log.Printf("[handlers] Error fetching game data: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch game data")
		return
	}

	respondJSON(w, http.StatusOK, bundle)
}

// PostChat answers the most recent user message in the posted conversation.
// POST /api/chat
func (h *Handler) PostChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.responder.Reply(req.Messages)
	if err != nil {
		if errors.Is(err, chat.ErrNoUserMessage) {
			respondError(w, http.StatusBadRequest, "no user message to reply to")
			return
		}
		log.Printf("[handlers] Error in chat: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: message})
}
