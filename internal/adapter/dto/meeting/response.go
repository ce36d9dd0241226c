package meeting

import (
	"encoding/json"
	"time"

	"github.com/peergrouptools/peergroup-api/internal/adapter/dto/common"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Description         *string              `json:"description"`
	HumeLabel           string               `json:"hume_label,omitempty"`
	HumeConfig          string               `json:"hume_config,omitempty"`
	HumeSessionID       *string              `json:"hume_session_id,omitempty"`
	HumeSessionRecordID *int64               `json:"hume_session_record_id,omitempty"`
	HumeSession         *HumeSessionResponse `json:"hume_session,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// MeetingSummaryItem is the index view of a meeting
type MeetingSummaryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HumeSessionResponse is the stored session envelope
type HumeSessionResponse struct {
	ID        int64           `json:"id"`
	Data      json.RawMessage `json:"data" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateMeetingResponse is returned after a meeting is created
type CreateMeetingResponse struct {
	ID      string           `json:"id"`
	Meeting *MeetingResponse `json:"meeting"`
}

// MeetingListResponse is one page of meetings
type MeetingListResponse struct {
	Data       []*MeetingSummaryItem      `json:"data"`
	Pagination *common.PaginationResponse `json:"pagination"`
}
