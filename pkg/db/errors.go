package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE classes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// violation describes one constraint failure in driver-neutral terms.
type violation struct {
	code       string
	constraint string
}

// sqliteMarkers maps sqlite's messages onto the postgres codes above.
var sqliteMarkers = map[string]string{
	"UNIQUE constraint failed":      pgUniqueViolation,
	"FOREIGN KEY constraint failed": pgForeignKeyViolation,
	"CHECK constraint failed":       pgCheckViolation,
}

func violationOf(err error) (violation, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return violation{code: pgErr.Code, constraint: pgErr.ConstraintName}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return violation{code: string(pqErr.Code), constraint: pqErr.Constraint}, true
	}
	msg := err.Error()
	for marker, code := range sqliteMarkers {
		if strings.Contains(msg, marker) {
			return violation{code: code, constraint: strings.TrimSpace(msg[strings.Index(msg, marker)+len(marker):])}, true
		}
	}
	if strings.Contains(msg, "duplicate key value") {
		return violation{code: pgUniqueViolation}, true
	}
	return violation{}, false
}

func matches(err error, code, constraintName string) bool {
	if err == nil {
		return false
	}
	v, ok := violationOf(err)
	if !ok || v.code != code {
		return false
	}
	return constraintName == "" || strings.Contains(v.constraint, constraintName)
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally on the named constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	return matches(err, pgUniqueViolation, constraintName)
}

// IsForeignKeyViolation reports whether err references a missing row.
func IsForeignKeyViolation(err error) bool {
	return matches(err, pgForeignKeyViolation, "")
}

func IsCheckViolation(err error) bool {
	return matches(err, pgCheckViolation, "")
}
