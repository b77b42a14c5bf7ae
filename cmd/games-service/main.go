package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dugout-labs/games-service/internal/analysis"
	"github.com/dugout-labs/games-service/internal/cache"
	"github.com/dugout-labs/games-service/internal/chat"
	"github.com/dugout-labs/games-service/internal/handlers"
	"github.com/dugout-labs/games-service/internal/providers"
	"github.com/dugout-labs/games-service/internal/providers/mock"
	"github.com/dugout-labs/games-service/internal/providers/oddsapi"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	config := loadConfig()

	// Pick the game source: live odds with an API key, fixtures without
	var source providers.Source
	if config.OddsAPIKey != "" {
		source = oddsapi.New(config.OddsAPIKey, oddsapi.WithSportKey(config.SportKey))
		fmt.Printf("✓ Using The Odds API (%s)\n", config.SportKey)
	} else {
		source = mock.New(nil)
		fmt.Println("✓ No ODDS_API_KEY set, using fixture games")
	}

	bundleCache := cache.New(source, analysis.AnalyzeGames, config.CacheTTL, nil)
	handler := handlers.NewHandler(bundleCache, chat.NewResponder())

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)
	r.Get("/api/games", handler.GetGames)
	r.Post("/api/chat", handler.PostChat)

	// Start server
	addr := fmt.Sprintf(":%d", config.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("✓ Games service started on port %d\n", config.Port)
		fmt.Printf("  Cache TTL: %s\n", config.CacheTTL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("✗ Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n✓ Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Printf("✗ Shutdown error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Games service stopped")
}

// Config holds service configuration
type Config struct {
	Port           int
	CacheTTL       time.Duration
	OddsAPIKey     string
	SportKey       string
	AllowedOrigins []string
}

// loadConfig loads configuration from environment
func loadConfig() Config {
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")

	return Config{
		Port:           getEnvInt("GAMES_SERVICE_PORT", 8080),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_HOURS", 6)) * time.Hour,
		OddsAPIKey:     getEnv("ODDS_API_KEY", ""),
		SportKey:       getEnv("SPORT_KEY", "baseball_mlb"),
		AllowedOrigins: splitAndTrim(origins),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
