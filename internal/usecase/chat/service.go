package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

// Hume EVI webhook event names
const (
	EventChatStarted      = "chat_started"
	EventChatEnded        = "chat_ended"
	EventUserMessage      = "user_message"
	EventAssistantMessage = "assistant_message"
)

// Service defines the interface for chat reconstruction
type Service interface {
	// Ingest verifies and applies one Hume webhook delivery
	Ingest(ctx context.Context, delivery Delivery) (*Outcome, error)

	// Transcript reads the materialized transcript of a chat
	Transcript(ctx context.Context, chatID string) (*entities.ChatTranscript, error)
}

// Ensure ChatService implements Service interface
var _ Service = (*ChatService)(nil)

// ReplayGuard deduplicates webhook redeliveries
type ReplayGuard interface {
	Claim(ctx context.Context, delivery string) (bool, error)
	Release(ctx context.Context, delivery string) error
}

// Delivery is a raw webhook request
type Delivery struct {
	Body      []byte
	Timestamp string
	Signature string
}

// Outcome describes what an accepted delivery did
type Outcome struct {
	Event     string
	ChatID    string
	Duplicate bool
	Ignored   bool
	// Inserted is false when a message event repeated a known message id
	Inserted bool
}

// ChatService rebuilds Hume chats from webhook events
type ChatService struct {
	chats  repositories.ChatRepository
	guard  ReplayGuard
	secret string
	logger *zap.Logger
	now    func() time.Time
}

// NewChatService creates a new chat service. guard may be nil to disable deduplication.
func NewChatService(chats repositories.ChatRepository, guard ReplayGuard, secret string, logger *zap.Logger) *ChatService {
	return &ChatService{
		chats:  chats,
		guard:  guard,
		secret: secret,
		logger: logger,
		now:    time.Now,
	}
}

// Ingest checks the signature, drops redeliveries and applies the event. A delivery
// that fails after being claimed is released so the vendor's retry is processed.
func (s *ChatService) Ingest(ctx context.Context, delivery Delivery) (*Outcome, error) {
	if !ai.VerifyHumeWebhook(s.secret, delivery.Body, delivery.Timestamp, delivery.Signature) {
		return nil, usecaseErrors.ErrInvalidSignature
	}
	if !gjson.ValidBytes(delivery.Body) {
		return nil, fmt.Errorf("%w: body is not valid json", usecaseErrors.ErrInvalidInput)
	}

	payload := gjson.ParseBytes(delivery.Body)
	event := payload.Get("event_name").String()
	chatID := firstString(payload, "data.chat_id", "chat_id")
	if chatID == "" {
		return nil, entities.ErrMissingChatID
	}

	if s.guard != nil {
		first, err := s.guard.Claim(ctx, delivery.Signature)
		if err != nil {
			// an unavailable dedupe store must not drop events
			if s.logger != nil {
				s.logger.Warn("Webhook replay guard unavailable", zap.Error(err))
			}
		} else if !first {
			return &Outcome{Event: event, ChatID: chatID, Duplicate: true}, nil
		}
	}

	outcome, err := s.apply(ctx, payload, event, chatID)
	if err != nil {
		if s.guard != nil {
			if relErr := s.guard.Release(context.WithoutCancel(ctx), delivery.Signature); relErr != nil && s.logger != nil {
				s.logger.Warn("Failed to release webhook delivery", zap.Error(relErr))
			}
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Hume webhook applied",
			zap.String("event", event),
			zap.String("chat_id", chatID),
			zap.Bool("ignored", outcome.Ignored),
		)
	}
	return outcome, nil
}

func (s *ChatService) apply(ctx context.Context, payload gjson.Result, event, chatID string) (*Outcome, error) {
	occurred := s.parseTime(firstResult(payload, "created_at", "data.created_at"))

	session, err := s.chats.FindOrCreateSession(ctx, chatID)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Event: event, ChatID: chatID}
	switch event {
	case EventChatStarted:
		session.Start(occurred)
		if err := s.chats.SaveSession(ctx, session); err != nil {
			return nil, err
		}

	case EventUserMessage, EventAssistantMessage:
		msg := payload.Get("data.message")
		if !msg.IsObject() {
			msg = payload.Get("message")
		}
		message, err := s.buildMessage(session, msg, occurred)
		if err != nil {
			return nil, err
		}
		if outcome.Inserted, err = s.chats.InsertMessage(ctx, message); err != nil {
			return nil, err
		}

	case EventChatEnded:
		session.End(occurred)
		if err := s.chats.SaveSession(ctx, session); err != nil {
			return nil, err
		}
		if err := s.chats.RefreshTranscripts(ctx); err != nil && s.logger != nil {
			s.logger.Error("Failed to refresh chat transcripts", zap.String("chat_id", chatID), zap.Error(err))
		}

	default:
		outcome.Ignored = true
	}
	return outcome, nil
}

// messageKeys are stored in their own columns; everything else lands in meta
var messageKeys = []string{"id", "role", "content", "created_at", "timestamp"}

func (s *ChatService) buildMessage(session *entities.ChatSession, msg gjson.Result, occurred time.Time) (*entities.ChatMessage, error) {
	raw := "{}"
	if msg.IsObject() {
		raw = msg.Raw
	}

	id := msg.Get("id").String()
	if id == "" {
		sum := sha256.Sum256([]byte(raw))
		id = hex.EncodeToString(sum[:])
	}
	role := msg.Get("role").String()
	if role == "" {
		role = "assistant"
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: message: %v", usecaseErrors.ErrInvalidInput, err)
	}
	for _, k := range messageKeys {
		delete(fields, k)
	}
	meta, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message meta: %w", err)
	}

	at := occurred
	if ts := firstResult(msg, "created_at", "timestamp"); ts.Exists() {
		at = s.parseTime(ts)
	}

	return &entities.ChatMessage{
		ChatSessionID: session.ID,
		HumeMessageID: id,
		Role:          role,
		Content:       msg.Get("content").String(),
		OccurredAt:    at,
		Meta:          datatypes.JSON(meta),
	}, nil
}

// Transcript reads one row of the transcript view
func (s *ChatService) Transcript(ctx context.Context, chatID string) (*entities.ChatTranscript, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil, entities.ErrMissingChatID
	}
	return s.chats.FindTranscript(ctx, chatID)
}

// parseTime accepts RFC 3339 strings and unix timestamps in seconds or
// milliseconds; anything else means now
func (s *ChatService) parseTime(v gjson.Result) time.Time {
	switch v.Type {
	case gjson.String:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05 MST", "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, v.Str); err == nil {
				return t.UTC()
			}
		}
	case gjson.Number:
		n := v.Int()
		if n > 1e12 {
			return time.UnixMilli(n).UTC()
		}
		if n > 0 {
			return time.Unix(n, 0).UTC()
		}
	}
	return s.now().UTC()
}

func firstResult(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(r.Get(p).String()); s != "" {
			return s
		}
	}
	return ""
}
