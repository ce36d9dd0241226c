package entities

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is a highs/lows answer captured by the client during a session
type CheckIn struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ChatID       *string   `gorm:"type:varchar(255);index" json:"chat_id,omitempty"`
	Kind         *string   `gorm:"type:varchar(20)" json:"kind,omitempty"`
	StepIndex    *int      `json:"step_index,omitempty"`
	Category     *string   `gorm:"type:varchar(100)" json:"category,omitempty"`
	QuestionID   *string   `gorm:"type:varchar(255)" json:"question_id,omitempty"`
	QuestionText *string   `gorm:"type:text" json:"question_text,omitempty"`
	Rating       *int      `json:"rating,omitempty"`
	UserMessage  *string   `gorm:"type:text" json:"user_message,omitempty"`
	CreatedFrom  string    `gorm:"type:varchar(50);not null;default:'client'" json:"created_from"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for CheckIn
func (CheckIn) TableName() string {
	return "check_ins"
}

// CheckInSourceClient marks check-ins posted by the web client
const CheckInSourceClient = "client"
