package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

type chatRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewChatRepository creates the repository behind webhook ingestion
func NewChatRepository(db *gorm.DB, logger *zap.Logger) repositories.ChatRepository {
	return &chatRepository{db: db, logger: logger}
}

// FindOrCreateSession inserts the chat session unless it exists, then reads it back.
// Concurrent webhooks for one chat resolve to the same row.
func (r *chatRepository) FindOrCreateSession(ctx context.Context, chatID string) (*entities.ChatSession, error) {
	if chatID == "" {
		return nil, entities.ErrMissingChatID
	}

	fresh := &entities.ChatSession{ChatID: chatID, Status: entities.ChatStatusPending}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "chat_id"}}, DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", translate(err))
	}

	var session entities.ChatSession
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to load chat session: %w", err)
	}
	return &session, nil
}

func (r *chatRepository) SaveSession(ctx context.Context, session *entities.ChatSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to save chat session: %w", translate(err))
	}
	return nil
}

func (r *chatRepository) InsertMessage(ctx context.Context, message *entities.ChatMessage) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "hume_message_id"}}, DoNothing: true}).
		Create(message)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert chat message: %w", translate(result.Error))
	}
	return result.RowsAffected > 0, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string) ([]*entities.ChatMessage, error) {
	var messages []*entities.ChatMessage
	if err := r.db.WithContext(ctx).
		Joins("JOIN chat_sessions ON chat_sessions.id = chat_messages.chat_session_id").
		Where("chat_sessions.chat_id = ?", chatID).
		Order("chat_messages.occurred_at ASC, chat_messages.created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// RefreshTranscripts refreshes the view concurrently and falls back to a blocking
// refresh, which is required the first time the view is populated.
func (r *chatRepository) RefreshTranscripts(ctx context.Context) error {
	err := r.db.WithContext(ctx).Exec("REFRESH MATERIALIZED VIEW CONCURRENTLY chat_transcripts").Error
	if err == nil {
		return nil
	}
	if r.logger != nil {
		r.logger.Warn("concurrent transcript refresh failed, retrying blocking refresh", zap.Error(err))
	}
	if err := r.db.WithContext(ctx).Exec("REFRESH MATERIALIZED VIEW chat_transcripts").Error; err != nil {
		return fmt.Errorf("failed to refresh chat transcripts: %w", err)
	}
	return nil
}

func (r *chatRepository) FindTranscript(ctx context.Context, chatID string) (*entities.ChatTranscript, error) {
	var transcript entities.ChatTranscript
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrChatSessionNotFound
		}
		return nil, fmt.Errorf("failed to load chat transcript: %w", err)
	}
	return &transcript, nil
}
