package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByClerkID finds a user by identity-provider subject
	FindByClerkID(ctx context.Context, clerkID string) (*entities.User, error)

	// Update updates a user
	Update(ctx context.Context, user *entities.User) error
}
