package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Meeting is a user's peer-group meeting. It points at the voice session that
// was summarized for it twice: by internal record id and by link identifier.
type Meeting struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	HumeLabel   string    `gorm:"type:varchar(255);not null" json:"hume_label"`
	HumeConfig  string    `gorm:"type:varchar(255);not null" json:"hume_config"`

	// HumeSessionRecordID is the internal record of the last summarized session.
	HumeSessionRecordID *int64       `gorm:"index" json:"hume_session_record_id,omitempty"`
	HumeSession         *HumeSession `gorm:"foreignKey:HumeSessionRecordID" json:"hume_session,omitempty"`
	// HumeSessionID is the link identifier: the vendor's canonical id when one was
	// supplied, otherwise the record id rendered as text.
	HumeSessionID *string `gorm:"type:varchar(255);index" json:"hume_session_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting owned by userID
func NewMeeting(userID uuid.UUID, title, humeLabel, humeConfig string) *Meeting {
	now := time.Now()
	return &Meeting{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      strings.TrimSpace(title),
		HumeLabel:  strings.TrimSpace(humeLabel),
		HumeConfig: strings.TrimSpace(humeConfig),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks presence of the required fields
func (m *Meeting) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}
	if strings.TrimSpace(m.HumeLabel) == "" || strings.TrimSpace(m.HumeConfig) == "" {
		return ErrInvalidHume
	}
	return nil
}

// IsOwnedBy reports whether userID owns the meeting
func (m *Meeting) IsOwnedBy(userID uuid.UUID) bool {
	return m.UserID == userID
}

// LinkSession points the meeting at a summarized session record
func (m *Meeting) LinkSession(recordID int64, linkID string) {
	m.HumeSessionRecordID = &recordID
	m.HumeSessionID = &linkID
}
