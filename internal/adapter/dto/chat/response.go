package chat

import "time"

// WebhookAckResponse acknowledges a Hume webhook delivery
type WebhookAckResponse struct {
	OK        bool   `json:"ok"`
	Event     string `json:"event,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Ignored   bool   `json:"ignored,omitempty"`
}

// TranscriptResponse is a reconstructed chat transcript
type TranscriptResponse struct {
	ChatID          string     `json:"chat_id"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	MessageCount    int        `json:"message_count"`
	Transcript      string     `json:"transcript"`
}
