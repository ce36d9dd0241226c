package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

// Service defines the interface for meeting use case
type Service interface {
	// CreateMeeting creates a meeting owned by the caller
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// GetMeeting retrieves a meeting with its summarized session; only the owner may read it
	GetMeeting(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Meeting, error)

	// ListMeetings retrieves one page of the caller's meetings
	ListMeetings(ctx context.Context, input ListMeetingsInput) (*ListMeetingsOutput, error)

	// DeleteMeeting removes a meeting; only the owner may delete it
	DeleteMeeting(ctx context.Context, meetingID, userID uuid.UUID) error
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// Pagination defaults
const (
	DefaultPerPage = 25
	MaxPerPage     = 100
)

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	HumeLabel   string
	HumeConfig  string
}

// ListMeetingsInput represents the index query
type ListMeetingsInput struct {
	UserID    uuid.UUID
	Search    string
	SortBy    string
	Direction string
	Page      int
	PerPage   int
}

// ListMeetingsOutput is one page of meetings
type ListMeetingsOutput struct {
	Meetings []*entities.Meeting
	Page     int
	PerPage  int
	Total    int64
	Pages    int
}

// MeetingService handles meeting business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
}

// NewMeetingService creates a new meeting service
func NewMeetingService(meetingRepo repositories.MeetingRepository) *MeetingService {
	return &MeetingService{meetingRepo: meetingRepo}
}
