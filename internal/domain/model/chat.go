package model

import (
	"encoding/json"
	"strings"

	apperrors "github.com/ragportal/portal-ui/internal/errors"
)

// ChatQuery is a question asked over the tenant's documents.
type ChatQuery struct {
	Query string `json:"query"`
}

// NewChatQuery trims the input and rejects blank questions.
func NewChatQuery(raw string) (ChatQuery, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return ChatQuery{}, apperrors.ValidationField("query", "Please enter a question")
	}
	return ChatQuery{Query: q}, nil
}

// ChatAnswer is the backend's response. Sources are passed through opaquely.
type ChatAnswer struct {
	Answer  string            `json:"answer"`
	Sources []json.RawMessage `json:"sources"`
}

// ChatRole identifies who authored a transcript message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a conversation transcript.
type ChatMessage struct {
	Role        ChatRole `json:"role"`
	Content     string   `json:"content"`
	SourceCount int      `json:"source_count,omitempty"`
}
