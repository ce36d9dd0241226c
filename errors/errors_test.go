package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  AppError
		code int
	}{
		{"not found", ErrNotFound("Meeting"), http.StatusNotFound},
		{"malformed", ErrMalformedResponse(nil), http.StatusUnprocessableEntity},
		{"validation", ErrValidation("title can't be blank"), http.StatusUnprocessableEntity},
		{"internal", ErrInternal(stdErrors.New("boom")), http.StatusInternalServerError},
		{"unavailable", ErrSummaryUnavailable(nil), http.StatusInternalServerError},
		{"signature", ErrInvalidSignature(), http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.HTTPCode)
		})
	}
}

func TestAppError_UnwrapAndDetails(t *testing.T) {
	cause := stdErrors.New("duplicate key")
	err := ErrDBConstraintViolation("index_users_on_clerk_id", "", cause)

	assert.True(t, stdErrors.Is(err, cause))
	assert.Equal(t, "index_users_on_clerk_id", err.Details["constraint"])
	assert.Equal(t, "Database constraint violation", err.Message)
	assert.Contains(t, err.Error(), "DB_CONSTRAINT_VIOLATION")

	base := ErrNotFound("Meeting")
	withID := base.WithDetail("id", "42")
	assert.Nil(t, base.Details)
	assert.Equal(t, "42", withID.Details["id"])
}

func TestErrorCode_MarshalText(t *testing.T) {
	b, err := ErrorCode_SUMMARY_MALFORMED.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "SUMMARY_MALFORMED", string(b))
	assert.Equal(t, "ErrorCode(999)", ErrorCode(999).String())
}
