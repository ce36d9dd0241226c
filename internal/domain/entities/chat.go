package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatStatus tracks the lifecycle reported by Hume webhooks
type ChatStatus string

const (
	ChatStatusPending ChatStatus = "pending"
	ChatStatusStarted ChatStatus = "started"
	ChatStatusEnded   ChatStatus = "ended"
)

// ChatSession is a Hume EVI chat reconstructed from webhook events
type ChatSession struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ChatID          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"chat_id"`
	Status          ChatStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for ChatSession
func (ChatSession) TableName() string {
	return "chat_sessions"
}

// Start marks the chat as started
func (c *ChatSession) Start(at time.Time) {
	c.Status = ChatStatusStarted
	c.StartedAt = &at
}

// End marks the chat as ended. Duration is measured from the start, or zero when
// the start was never observed.
func (c *ChatSession) End(at time.Time) {
	start := at
	if c.StartedAt != nil {
		start = *c.StartedAt
	}
	seconds := int(at.Sub(start).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	c.Status = ChatStatusEnded
	c.EndedAt = &at
	c.DurationSeconds = &seconds
}

// ChatMessage is one user or assistant utterance of a chat
type ChatMessage struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ChatSessionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"chat_session_id"`
	HumeMessageID string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"hume_message_id"`
	Role          string         `gorm:"type:varchar(20);not null" json:"role"`
	Content       string         `gorm:"type:text;not null;default:''" json:"content"`
	OccurredAt    time.Time      `gorm:"not null;index" json:"occurred_at"`
	Meta          datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"meta"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ChatTranscript is a row of the chat_transcripts materialized view
type ChatTranscript struct {
	ChatSessionID   uuid.UUID  `gorm:"type:uuid" json:"chat_session_id"`
	ChatID          string     `json:"chat_id"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	MessageCount    int        `json:"message_count"`
	Transcript      string     `json:"transcript"`
}

// TableName specifies the view name for ChatTranscript
func (ChatTranscript) TableName() string {
	return "chat_transcripts"
}
