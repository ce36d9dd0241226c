package meeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

// CreateMeeting creates a new meeting
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	meeting := entities.NewMeeting(input.UserID, input.Title, input.HumeLabel, input.HumeConfig)
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			meeting.Description = &d
		}
	}

	if err := meeting.Validate(); err != nil {
		return nil, err
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID
func (s *MeetingService) GetMeeting(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByIDWithSession(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.IsOwnedBy(userID) {
		return nil, entities.ErrForbidden
	}
	return meeting, nil
}

// ListMeetings retrieves meetings with search, sorting and pagination
func (s *MeetingService) ListMeetings(ctx context.Context, input ListMeetingsInput) (*ListMeetingsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	meetings, total, err := s.meetingRepo.List(ctx, repositories.MeetingFilters{
		UserID:    input.UserID,
		Search:    input.Search,
		SortBy:    input.SortBy,
		SortOrder: input.Direction,
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return &ListMeetingsOutput{
		Meetings: meetings,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		Pages:    pages,
	}, nil
}

// DeleteMeeting removes a meeting owned by userID
func (s *MeetingService) DeleteMeeting(ctx context.Context, meetingID, userID uuid.UUID) error {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return err
	}
	if !meeting.IsOwnedBy(userID) {
		return entities.ErrForbidden
	}
	if err := s.meetingRepo.Delete(ctx, meetingID); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return nil
}
