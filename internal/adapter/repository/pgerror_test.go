package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

func TestTranslate(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_clerk_id", Detail: "Key (clerk_id)=(u1) already exists."}
		err := translate(fmt.Errorf("insert: %w", pgErr))

		var cerr *repositories.ConstraintError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "idx_users_clerk_id", cerr.Constraint)
		assert.Contains(t, cerr.Error(), "already exists")
		assert.True(t, errors.Is(err, pgErr))
	})

	t.Run("not null falls back to column", func(t *testing.T) {
		err := translate(&pgconn.PgError{Code: "23502", ColumnName: "title", Message: "null value in column \"title\""})
		var cerr *repositories.ConstraintError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "title", cerr.Constraint)
	})

	t.Run("gorm translated", func(t *testing.T) {
		var cerr *repositories.ConstraintError
		assert.True(t, errors.As(translate(gorm.ErrDuplicatedKey), &cerr))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := &pgconn.PgError{Code: "42P01"}
		assert.Same(t, boom, translate(boom))
		assert.Nil(t, translate(nil))
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_done\\`, escapeLike(`100% _done\`))
}
