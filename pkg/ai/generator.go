package ai

import "context"

// Role is a chat message author
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of a chat-completion conversation
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat selects how strictly the provider constrains its output
type ResponseFormat int

const (
	FormatText ResponseFormat = iota
	FormatJSONObject
	FormatJSONSchema
)

func (f ResponseFormat) String() string {
	switch f {
	case FormatJSONObject:
		return "json_object"
	case FormatJSONSchema:
		return "json_schema"
	default:
		return "text"
	}
}

// JSONSchema is a named schema attached to a FormatJSONSchema request
type JSONSchema struct {
	Name        string
	Description string
	Schema      map[string]any
	Strict      bool
}

// GenerationRequest is a single chat-completion call
type GenerationRequest struct {
	Messages    []ChatMessage
	Format      ResponseFormat
	Schema      *JSONSchema
	Temperature float64
	MaxTokens   int
}

// Generation is the provider's first choice
type Generation struct {
	Text  string
	Model string
}

// Generator issues chat completions
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*Generation, error)
}
