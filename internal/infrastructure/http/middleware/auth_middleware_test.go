package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergrouptools/peergroup-api/internal/domain/entities"
	usecaseErrors "github.com/peergrouptools/peergroup-api/internal/usecase/errors"
)

type stubAuth struct {
	user  *entities.User
	err   error
	token string
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*entities.User, error) {
	s.token = token
	return s.user, s.err
}

func runAuth(t *testing.T, svc *stubAuth, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := EchoAuth(svc)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func TestEchoAuthSetsUser(t *testing.T) {
	user := entities.NewUser("user_1")
	svc := &stubAuth{user: user}

	c, err := runAuth(t, svc, "Bearer  tok-123 ")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", svc.token)

	got, ok := CurrentUser(c)
	require.True(t, ok)
	assert.Equal(t, user, got)
	id, ok := CurrentUserID(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, id)
}

func TestEchoAuthMissingToken(t *testing.T) {
	_, err := runAuth(t, &stubAuth{}, "")
	assert.ErrorIs(t, err, usecaseErrors.ErrMissingToken)

	_, err = runAuth(t, &stubAuth{}, "Basic abc")
	assert.ErrorIs(t, err, usecaseErrors.ErrMissingToken)
}

func TestEchoAuthPropagatesFailure(t *testing.T) {
	c, err := runAuth(t, &stubAuth{err: usecaseErrors.ErrTokenExpired}, "Bearer tok")
	assert.ErrorIs(t, err, usecaseErrors.ErrTokenExpired)
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("bearer abc"))
	assert.Equal(t, "", BearerToken("Bearer"))
	assert.Equal(t, "", BearerToken("Token abc"))
}
