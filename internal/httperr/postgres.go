package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeTimeConflict = "time_conflict"

	// ExclusionConstraint guards non-cancelled appointments of a professional
	// against overlapping time ranges.
	ExclusionConstraint = "appointments_no_overlap"

	pgExclusionViolation = "23P01"
)

// IsExclusionConflict reports whether err is the database rejecting an
// overlapping appointment.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation && pgErr.ConstraintName == ExclusionConstraint
}
