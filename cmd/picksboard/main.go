// picksboard is a terminal demo client for the games service: it keeps a
// polled snapshot of games and picks, renders the dashboard surfaces, and
// forwards typed questions to the chat endpoint.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/dugout-labs/games-service/internal/client"
	"github.com/dugout-labs/games-service/internal/render"
	"github.com/dugout-labs/games-service/pkg/models"
)

// transcriptEntry is one line of the local chat history. The server keeps no
// conversation state, so the full history lives here.
type transcriptEntry struct {
	ID      string
	Message models.ChatMessage
}

func main() {
	_ = godotenv.Load()

	serverURL := getEnv("SERVER_URL", "http://localhost:8080")
	refreshMin := getEnvInt("CLIENT_REFRESH_MINUTES", 30)

	store := client.New(serverURL, time.Duration(refreshMin)*time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Run(ctx)

	fmt.Printf("picksboard connected to %s\n", serverURL)
	fmt.Println("Commands: b = board, r = refresh, q = quit, anything else = ask the assistant")

	// Wait for the initial fetch before the first board render.
	select {
	case <-store.Ready():
	case <-time.After(5 * time.Second):
		fmt.Println("still waiting for game data...")
	}
	printBoard(store)

	var transcript []transcriptEntry
	httpClient := &http.Client{Timeout: 15 * time.Second}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "q":
			return
		case "b":
			printBoard(store)
		case "r":
			if err := store.Refresh(ctx); err != nil {
				fmt.Printf("refresh failed: %v\n", err)
			}
			printBoard(store)
		default:
			transcript = ask(httpClient, serverURL, transcript, line)
		}
	}
}

func printBoard(store *client.Store) {
	state := store.Snapshot()
	fmt.Println()
	fmt.Println(render.UpcomingGames(state))
	fmt.Println(render.TopPicks(state))
	fmt.Println(render.Stats(state))
}

// ask appends the question to the transcript, posts the conversation to the
// chat endpoint, and prints and records the reply.
func ask(httpClient *http.Client, serverURL string, transcript []transcriptEntry, question string) []transcriptEntry {
	transcript = append(transcript, transcriptEntry{
		ID:      uuid.NewString(),
		Message: models.ChatMessage{Role: models.RoleUser, Content: question},
	})

	messages := make([]models.ChatMessage, 0, len(transcript))
	for _, entry := range transcript {
		messages = append(messages, entry.Message)
	}

	reply, err := postChat(httpClient, serverURL, messages)
	if err != nil {
		fmt.Printf("chat failed: %v\n", err)
		return transcript
	}

	fmt.Printf("\n%s\n\n", reply)
	return append(transcript, transcriptEntry{
		ID:      uuid.NewString(),
		Message: models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	})
}

func postChat(httpClient *http.Client, serverURL string, messages []models.ChatMessage) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", serverURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat endpoint error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var chatResp models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return chatResp.Response, nil
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
