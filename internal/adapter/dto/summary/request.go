package summary

import "encoding/json"

// SummarizeRequest is the session summary request. Transcript items are kept raw:
// roles, text keys and emotion shapes vary between clients.
type SummarizeRequest struct {
	MeetingID     string            `json:"meeting_id" validate:"required,uuid"`
	HumeSessionID string            `json:"hume_session_id,omitempty" validate:"max=255"`
	Transcript    []json.RawMessage `json:"transcript,omitempty" swaggertype:"array,object"`
}

// SummarizeResponse is returned once the summary is stored and linked
type SummarizeResponse struct {
	OK            bool            `json:"ok"`
	Summary       json.RawMessage `json:"summary" swaggertype:"object"`
	MeetingID     string          `json:"meeting_id"`
	HumeSessionID string          `json:"hume_session_id"`
}
