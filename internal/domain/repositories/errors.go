package repositories

import "fmt"

// ConstraintError is an integrity-constraint violation reported by the database
type ConstraintError struct {
	Constraint string
	Detail     string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("constraint %s violated: %s", e.Constraint, e.Detail)
	}
	return fmt.Sprintf("constraint %s violated", e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
