package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/peergrouptools/peergroup-api/internal/domain/repositories"
)

// integrityViolationClass is the SQLSTATE class for not-null, unique, fk and check violations
const integrityViolationClass = "23"

// translate turns Postgres integrity violations into *repositories.ConstraintError
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		constraint := pgErr.ConstraintName
		if constraint == "" {
			constraint = pgErr.ColumnName
		}
		return &repositories.ConstraintError{Constraint: constraint, Detail: detail, Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &repositories.ConstraintError{Constraint: "unknown", Detail: err.Error(), Err: err}
	}

	return err
}
