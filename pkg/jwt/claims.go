package jwt

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the Clerk session token claims the API reads. Profile fields come
// from the session token template and may be absent.
type Claims struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
	SessionID       string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Avatar prefers avatar_url and falls back to Clerk's image_url
func (c *Claims) Avatar() string {
	if strings.TrimSpace(c.AvatarURL) != "" {
		return c.AvatarURL
	}
	return c.ImageURL
}

// DisplayName prefers full_name, otherwise joins first and last names
func (c *Claims) DisplayName() string {
	if name := strings.TrimSpace(c.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.Join([]string{c.FirstName, c.LastName}, " "))
}
