package checkin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

// Service defines the interface for check-in use case
type Service interface {
	Create(ctx context.Context, input CreateInput) (*entities.CheckIn, error)
}

// Ensure CheckInService implements Service interface
var _ Service = (*CheckInService)(nil)

// CreateInput is one highs/lows answer
type CreateInput struct {
	UserID       uuid.UUID
	ChatID       *string
	Kind         *string
	StepIndex    *int
	Category     *string
	QuestionID   *string
	QuestionText *string
	Rating       *int
	UserMessage  *string
}

// CheckInService stores check-ins posted by the client
type CheckInService struct {
	repo repositories.CheckInRepository
}

// NewCheckInService creates a new check-in service
func NewCheckInService(repo repositories.CheckInRepository) *CheckInService {
	return &CheckInService{repo: repo}
}

// Create stores the check-in as client-originated
func (s *CheckInService) Create(ctx context.Context, input CreateInput) (*entities.CheckIn, error) {
	checkIn := &entities.CheckIn{
		ID:           uuid.New(),
		UserID:       input.UserID,
		ChatID:       input.ChatID,
		Kind:         input.Kind,
		StepIndex:    input.StepIndex,
		Category:     input.Category,
		QuestionID:   input.QuestionID,
		QuestionText: input.QuestionText,
		Rating:       input.Rating,
		UserMessage:  input.UserMessage,
		CreatedFrom:  entities.CheckInSourceClient,
	}
	if err := s.repo.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}
	return checkIn, nil
}
