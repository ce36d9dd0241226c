package handler

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/errors"
	"github.com/peergrouptools/peergroup-api/internal/adapter/dto/common"
	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
	"github.com/peergrouptools/peergroup-api/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
	"github.com/peergrouptools/peergroup-api/internal/usecase/summary"
	"github.com/peergrouptools/peergroup-api/pkg/validator"
)

// getRequestID reads the id assigned by the RequestID middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Response() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// MapError translates usecase and domain errors into an AppError
func MapError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	var constraint *repositories.ConstraintError
	if stdErrors.As(err, &constraint) {
		return errors.ErrDBConstraintViolation(constraint.Constraint, constraint.Detail, err)
	}

	var malformed *summary.MalformedResponseError
	switch {
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrNotFound("Meeting")
	case stdErrors.Is(err, entities.ErrChatSessionNotFound):
		return errors.ErrNotFound("Chat")
	case stdErrors.Is(err, entities.ErrUserNotFound):
		return errors.ErrNotFound("User")
	case stdErrors.Is(err, entities.ErrHumeSessionNotFound):
		return errors.ErrNotFound("Session")
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Resource")

	case stdErrors.Is(err, entities.ErrForbidden):
		return errors.ErrPermissionDenied("not the owner")

	case stdErrors.Is(err, entities.ErrInvalidTitle),
		stdErrors.Is(err, entities.ErrInvalidHume),
		stdErrors.Is(err, entities.ErrMissingChatID):
		return errors.ErrValidation(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())

	case stdErrors.As(err, &malformed), stdErrors.Is(err, usecaseErrors.ErrMalformedResponse):
		return errors.ErrMalformedResponse(err)
	case stdErrors.Is(err, usecaseErrors.ErrSummaryUnavailable):
		return errors.ErrSummaryUnavailable(err)
	case stdErrors.Is(err, context.DeadlineExceeded):
		return errors.ErrSummaryUnavailable(err).WithDetail("reason", "deadline exceeded")

	case stdErrors.Is(err, usecaseErrors.ErrInvalidSignature):
		return errors.ErrInvalidSignature()
	case stdErrors.Is(err, usecaseErrors.ErrMissingToken):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, usecaseErrors.ErrTokenExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid),
		stdErrors.Is(err, entities.ErrMissingClerkID):
		return errors.ErrInvalidToken()
	}

	return errors.ErrInternal(err)
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	}
	switch he.Code {
	case http.StatusNotFound:
		return errors.AppError{HTTPCode: he.Code, Code: errors.ErrorCode_NOT_FOUND, Message: message}
	case http.StatusUnauthorized:
		return errors.AppError{HTTPCode: he.Code, Code: errors.ErrorCode_UNAUTHENTICATED, Message: message}
	case http.StatusForbidden:
		return errors.AppError{HTTPCode: he.Code, Code: errors.ErrorCode_PERMISSION_DENIED, Message: message}
	}
	if he.Code >= http.StatusInternalServerError {
		return errors.ErrInternal(he)
	}
	return errors.AppError{HTTPCode: he.Code, Code: errors.ErrorCode_INVALID_ARGUMENT, Message: message}
}

// HandleError centralizes error rendering and logging. The raw cause is logged and
// never written to the client.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := MapError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", appErr.HTTPCode),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		OK:      false,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// NewHTTPErrorHandler renders errors returned by handlers and middleware
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			appErr := MapError(err)
			_ = c.NoContent(appErr.HTTPCode)
			return
		}
		if rerr := HandleError(logger, c, err); rerr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(rerr))
		}
	}
}

// bindAndValidate binds the request into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	return validate(c, req)
}

func validate(c echo.Context, req interface{}) error {
	if err := c.Validate(req); err != nil {
		return errors.ErrValidation(strings.Join(validator.Messages(err), "; "))
	}
	return nil
}

// userID returns the authenticated user's id
func userID(c echo.Context) (uuid.UUID, error) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return uuid.Nil, errors.ErrUnauthenticated()
	}
	return id, nil
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}
