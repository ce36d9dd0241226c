package user

import "time"

// UserResponse represents the current user
type UserResponse struct {
	ID           string     `json:"id"`
	ClerkID      string     `json:"clerk_id"`
	Email        string     `json:"email,omitempty"`
	FullName     string     `json:"full_name,omitempty"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HumeTokenResponse is a short-lived Hume access token for the browser
type HumeTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
