// Package chat implements the canned-response assistant for the demo UI.
// Replies come from ordered keyword rules matched against the most recent
// user message; no conversation state is kept server-side.
package chat

import (
	"errors"
	"strings"

	"github.com/dugout-labs/games-service/pkg/models"
)

// ErrNoUserMessage reports a conversation with no user turn to reply to.
var ErrNoUserMessage = errors.New("no user message in conversation")

// Fallback is returned when no keyword rule matches.
const Fallback = "I'm sorry, I don't have information about that specific query. Would you like to know about today's MLB games instead?"

// rule maps a keyword group to a canned response. The first matching rule
// wins, so order matters: team matchups before generic topics.
type rule struct {
	keywords []string
	response string
}

// Responder answers chat messages by keyword matching.
type Responder struct {
	rules []rule
}

// NewResponder creates a responder with the demo MLB rule set.
func NewResponder() *Responder {
	return &Responder{
		rules: []rule{
			{
				keywords: []string{"yankees", "red sox"},
				response: "The Yankees are favored at -150 against the Red Sox (+130) tonight. Based on my analysis of recent performance, pitching matchups, and historical data, I give the Yankees a 62% chance to win. The starting pitcher for the Yankees has a 2.1 ERA in his last 5 starts, while the Red Sox starter has struggled with a 4.8 ERA.",
			},
			{
				keywords: []string{"dodgers", "giants"},
				response: "The Dodgers are heavily favored at -180 against the Giants (+160) tonight. My model gives the Dodgers a 68% chance to win, largely due to their dominant home record and the pitching matchup. The over/under is set at 8.5 runs, and I'm seeing value on the over based on both teams' recent offensive output.",
			},
			{
				keywords: []string{"odds", "betting"},
				response: "Here are today's MLB odds for the top games:\n\n- Yankees (-150) vs Red Sox (+130)\n- Dodgers (-180) vs Giants (+160)\n- Astros (-135) vs Rangers (+115)\n- Braves (-160) vs Phillies (+140)\n\nWould you like more detailed analysis on any of these matchups?",
			},
			{
				keywords: []string{"prediction", "who will win"},
				response: "Based on my analysis, here are today's top predictions:\n\n1. Dodgers over Giants (68% confidence)\n2. Yankees over Red Sox (62% confidence)\n3. Braves over Phillies (59% confidence)\n\nThese predictions are based on pitching matchups, recent team performance, head-to-head history, and several other factors.",
			},
			{
				keywords: []string{"prop", "player"},
				response: "Here are today's top player prop bets with value:\n\n1. Aaron Judge to hit a home run (+320) - High value\n2. Shohei Ohtani over 1.5 total bases (-125) - Medium value\n3. Gerrit Cole over 7.5 strikeouts (-110) - Medium value\n\nWould you like more detailed analysis on any of these props?",
			},
		},
	}
}

// Reply answers the most recent user message in the conversation. It returns
// ErrNoUserMessage when the conversation has no user turn.
func (r *Responder) Reply(messages []models.ChatMessage) (string, error) {
	last, ok := lastUserMessage(messages)
	if !ok {
		return "", ErrNoUserMessage
	}

	content := strings.ToLower(last.Content)
	for _, rule := range r.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(content, keyword) {
				return rule.response, nil
			}
		}
	}

	return Fallback, nil
}

func lastUserMessage(messages []models.ChatMessage) (models.ChatMessage, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleUser {
			return messages[i], true
		}
	}
	return models.ChatMessage{}, false
}
