package conversation

import (
	"context"
	"time"
)

// Exchange is one parent message and the assistant reply it produced.
type Exchange struct {
	ID             string    `json:"id"`
	UserMessage    string    `json:"user_message"`
	AssistantReply string    `json:"assistant_reply"`
	CreatedAt      time.Time `json:"created_at"`
}

// Language is the reply register chosen for a message.
type Language string

const (
	LanguageEnglish    Language = "english"
	LanguageUrduScript Language = "urdu_script"
	LanguageRomanUrdu  Language = "roman_urdu"
)

const (
	// MaxExchanges bounds every user's log; older exchanges are dropped first.
	MaxExchanges = 5
	// PromptWindow is how many exchanges are rendered into a prompt.
	PromptWindow = 3
	// FallbackReply is sent to the parent whenever generation fails.
	FallbackReply = "Technical issue. Please try again later."
)

// Replier produces the text that should be sent back for an inbound message.
type Replier interface {
	Reply(ctx context.Context, userMessage, userID string) string
}

// HistoryReader exposes read-only access to retained exchanges.
type HistoryReader interface {
	Recent(userID string, n int) []Exchange
}
