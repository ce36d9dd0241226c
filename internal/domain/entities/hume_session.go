package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// EnvelopeVersion is the current layout of HumeSession.Data
const EnvelopeVersion = 1

// SessionEnvelope keeps the inbound payload and the generated summary side by side,
// so neither can clobber keys of the other.
type SessionEnvelope struct {
	Version      int             `json:"version"`
	Raw          json.RawMessage `json:"raw"`
	Summary      json.RawMessage `json:"summary"`
	Model        string          `json:"model"`
	Tier         string          `json:"tier,omitempty"`
	SchemaValid  *bool           `json:"schema_valid,omitempty"`
	SummarizedAt *time.Time      `json:"summarized_at,omitempty"`
}

// HasSummary reports whether a summary has been attached
func (e *SessionEnvelope) HasSummary() bool {
	return len(e.Summary) > 0 && string(e.Summary) != "null"
}

// HumeSession is one summarized voice session
type HumeSession struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"data"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for HumeSession
func (HumeSession) TableName() string {
	return "hume_sessions"
}

// NewHumeSession wraps the inbound payload in a fresh envelope
func NewHumeSession(raw json.RawMessage) (*HumeSession, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("raw payload is not valid json")
	}

	s := &HumeSession{}
	if err := s.setEnvelope(&SessionEnvelope{Version: EnvelopeVersion, Raw: raw, Summary: json.RawMessage("null")}); err != nil {
		return nil, err
	}
	return s, nil
}

// Envelope decodes Data
func (s *HumeSession) Envelope() (*SessionEnvelope, error) {
	var env SessionEnvelope
	if err := json.Unmarshal(s.Data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode session envelope: %w", err)
	}
	return &env, nil
}

// AttachSummary records the summary and its provenance. Raw is left untouched and
// a summary can be attached only once.
func (s *HumeSession) AttachSummary(summary json.RawMessage, model, tier string, schemaValid bool, at time.Time) error {
	env, err := s.Envelope()
	if err != nil {
		return err
	}
	if env.HasSummary() {
		return ErrEnvelopeSealed
	}

	env.Summary = summary
	env.Model = model
	env.Tier = tier
	env.SchemaValid = &schemaValid
	env.SummarizedAt = &at
	return s.setEnvelope(env)
}

func (s *HumeSession) setEnvelope(env *SessionEnvelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode session envelope: %w", err)
	}
	s.Data = datatypes.JSON(b)
	return nil
}
