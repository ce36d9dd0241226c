package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/pkg/jwt"
)

// TokenVerifier checks an identity-provider session token
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*jwt.Claims, error)
}

// Service defines the interface for request authentication
type Service interface {
	// Authenticate verifies a bearer token and returns the local user, creating or
	// refreshing it from the token claims
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// Ensure IdentityService implements Service interface
var _ Service = (*IdentityService)(nil)

// IdentityService mirrors Clerk users into the local users table
type IdentityService struct {
	verifier TokenVerifier
	userRepo repositories.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewIdentityService creates a new identity service
func NewIdentityService(verifier TokenVerifier, userRepo repositories.UserRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		verifier: verifier,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Authenticate verifies token and upserts the user keyed by the token subject
func (s *IdentityService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, usecaseErrors.ErrMissingToken
	}

	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Clerk token verification failed", zap.Error(err))
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, usecaseErrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrTokenInvalid, err)
	}

	return s.upsert(ctx, entities.Profile{
		ClerkID:   claims.Subject,
		Email:     claims.Email,
		FullName:  claims.DisplayName(),
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		AvatarURL: claims.Avatar(),
	})
}

func (s *IdentityService) upsert(ctx context.Context, profile entities.Profile) (*entities.User, error) {
	if strings.TrimSpace(profile.ClerkID) == "" {
		return nil, entities.ErrMissingClerkID
	}
	now := s.now()

	user, err := s.userRepo.FindByClerkID(ctx, profile.ClerkID)
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		user = entities.NewUser(profile.ClerkID)
		user.ApplyProfile(profile)
		user.TouchSignIn(now)

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			if s.logger != nil {
				s.logger.Info("User created from Clerk claims", zap.String("clerk_id", profile.ClerkID))
			}
			return user, nil
		}

		// a concurrent request created the same user first
		var constraint *repositories.ConstraintError
		if !errors.As(err, &constraint) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		if user, err = s.userRepo.FindByClerkID(ctx, profile.ClerkID); err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.ApplyProfile(profile)
	user.TouchSignIn(now)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
