package presenter

import (
	chatDTO "github.com/peergrouptools/peergroup-api/internal/adapter/dto/chat"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/usecase/chat"
)

// ToTranscriptResponse converts a transcript view row to its DTO
func ToTranscriptResponse(t *entities.ChatTranscript) *chatDTO.TranscriptResponse {
	if t == nil {
		return nil
	}
	return &chatDTO.TranscriptResponse{
		ChatID:          t.ChatID,
		Status:          t.Status,
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
		DurationSeconds: t.DurationSeconds,
		MessageCount:    t.MessageCount,
		Transcript:      t.Transcript,
	}
}

// ToWebhookAck converts an ingestion outcome to the acknowledgement body
func ToWebhookAck(o *chat.Outcome) *chatDTO.WebhookAckResponse {
	if o == nil {
		return &chatDTO.WebhookAckResponse{OK: true}
	}
	return &chatDTO.WebhookAckResponse{
		OK:        true,
		Event:     o.Event,
		Duplicate: o.Duplicate,
		Ignored:   o.Ignored,
	}
}
