package presenter

import (
	userDTO "github.com/peergrouptools/peergroup-api/internal/adapter/dto/user"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/external/oauth"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *userDTO.UserResponse {
	if u == nil {
		return nil
	}

	return &userDTO.UserResponse{
		ID:           u.ID.String(),
		ClerkID:      u.ClerkID,
		Email:        deref(u.Email),
		FullName:     deref(u.FullName),
		FirstName:    deref(u.FirstName),
		LastName:     deref(u.LastName),
		AvatarURL:    deref(u.AvatarURL),
		LastSignInAt: u.LastSignInAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToHumeTokenResponse converts a provider token to its DTO
func ToHumeTokenResponse(t *oauth.HumeToken) *userDTO.HumeTokenResponse {
	if t == nil {
		return nil
	}
	return &userDTO.HumeTokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
