package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an identity-provider account mirrored locally, keyed by clerk_id
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClerkID      string     `json:"clerk_id" gorm:"column:clerk_id;type:varchar(255);uniqueIndex;not null"`
	Email        *string    `json:"email,omitempty" gorm:"type:varchar(255);index"`
	FullName     *string    `json:"full_name,omitempty" gorm:"type:varchar(255)"`
	FirstName    *string    `json:"first_name,omitempty" gorm:"type:varchar(255)"`
	LastName     *string    `json:"last_name,omitempty" gorm:"type:varchar(255)"`
	AvatarURL    *string    `json:"avatar_url,omitempty" gorm:"type:varchar(1000)"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty" gorm:"type:timestamptz"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Profile is the identity-provider view of a user, as read from token claims
type Profile struct {
	ClerkID   string
	Email     string
	FullName  string
	FirstName string
	LastName  string
	AvatarURL string
}

// NewUser creates a user for a first sign-in
func NewUser(clerkID string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		ClerkID:   clerkID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyProfile copies non-blank profile fields onto the user. Blank values never
// overwrite what is already stored.
func (u *User) ApplyProfile(p Profile) {
	assign(&u.Email, p.Email)
	assign(&u.FullName, p.FullName)
	assign(&u.FirstName, p.FirstName)
	assign(&u.LastName, p.LastName)
	assign(&u.AvatarURL, p.AvatarURL)
}

// TouchSignIn records a successful authentication
func (u *User) TouchSignIn(at time.Time) {
	u.LastSignInAt = &at
	u.UpdatedAt = at
}

func assign(dst **string, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	*dst = &value
}
