package repositories

import (
	"context"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
)

// ChatRepository stores the chats reconstructed from Hume webhooks
type ChatRepository interface {
	// FindOrCreateSession returns the chat session for chatID, creating it when missing
	FindOrCreateSession(ctx context.Context, chatID string) (*entities.ChatSession, error)

	// SaveSession persists status and timing changes
	SaveSession(ctx context.Context, session *entities.ChatSession) error

	// InsertMessage stores a message once per hume_message_id; inserted is false for duplicates
	InsertMessage(ctx context.Context, message *entities.ChatMessage) (inserted bool, err error)

	// ListMessages returns the chat's messages ordered by occurrence
	ListMessages(ctx context.Context, chatID string) ([]*entities.ChatMessage, error)

	// RefreshTranscripts rebuilds the chat_transcripts view
	RefreshTranscripts(ctx context.Context) error

	// FindTranscript reads one row of the chat_transcripts view
	FindTranscript(ctx context.Context, chatID string) (*entities.ChatTranscript, error)
}
