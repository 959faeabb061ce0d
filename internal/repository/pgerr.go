package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// violation returns the Postgres error code and constraint name of err, if
// err came from the server.
func violation(err error) (code, constraint string, ok bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", "", false
	}
	return string(pqErr.Code), pqErr.Constraint, true
}
