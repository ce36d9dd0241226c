package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/usecase/auth"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
)

// Echo context keys set by EchoAuth
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// EchoAuth returns an Echo middleware that authenticates the bearer token and sets
// "user" (*entities.User) and "user_id" (uuid.UUID) into the Echo context.
// Failures are returned as usecase errors for the HTTP error handler to render.
func EchoAuth(authService auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return usecaseErrors.ErrMissingToken
			}

			user, err := authService.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			c.Set(UserIDKey, user.ID)
			return next(c)
		}
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the user stored by EchoAuth
func CurrentUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(UserKey).(*entities.User)
	return user, ok && user != nil
}

// CurrentUserID returns the user id stored by EchoAuth
func CurrentUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}
