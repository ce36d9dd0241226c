package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByIDWithSession retrieves a meeting and its linked session record
	FindByIDWithSession(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// LinkSession stores the session record id and link identifier on the meeting
	LinkSession(ctx context.Context, meetingID uuid.UUID, recordID int64, linkID string) error

	// Delete removes a meeting
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	UserID    uuid.UUID
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}
