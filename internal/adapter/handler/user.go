package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/errors"
	"github.com/peergrouptools/peergroup-api/internal/adapter/presenter"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/external/oauth"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/http/middleware"
)

// HumeTokenProvider issues browser access tokens for Hume EVI
type HumeTokenProvider interface {
	FetchToken(ctx context.Context) (*oauth.HumeToken, error)
}

// User handles current-user requests
type User struct {
	tokens HumeTokenProvider
	logger *zap.Logger
}

// NewUserHandler creates a new user handler. tokens may be nil when Hume is not configured.
func NewUserHandler(tokens HumeTokenProvider, logger *zap.Logger) *User {
	return &User{tokens: tokens, logger: logger}
}

// Me handles GET /me
// @Summary      Get current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  user.UserResponse
// @Failure      401  {object}  common.ErrorResponse  "User not authenticated"
// @Router       /me [get]
func (h *User) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	return c.JSON(http.StatusOK, presenter.ToUserResponse(u))
}

// CreateHumeToken handles POST /hume_tokens
// @Summary      Issue a Hume access token
// @Description  Exchanges the server's Hume credentials for a short-lived browser token
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  user.HumeTokenResponse
// @Failure      401  {object}  common.ErrorResponse  "User not authenticated"
// @Failure      502  {object}  common.ErrorResponse  "Token exchange failed"
// @Router       /hume_tokens [post]
func (h *User) CreateHumeToken(c echo.Context) error {
	if h.tokens == nil {
		return HandleError(h.logger, c, errors.ErrExternalAPIFailed("hume", nil).WithDetail("reason", "not configured"))
	}

	token, err := h.tokens.FetchToken(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrExternalAPIFailed("hume", err))
	}
	return c.JSON(http.StatusOK, presenter.ToHumeTokenResponse(token))
}
