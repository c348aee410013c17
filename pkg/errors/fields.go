package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// LogFields flattens err into structured log fields: its code, the unwrap
// chain with the innermost message, and any Postgres diagnostics found
// underneath. Empty values are left out.
func LogFields(err error) map[string]any {
	if err == nil {
		return map[string]any{}
	}

	fields := map[string]any{
		"error":      err.Error(),
		"error_code": string(CodeOf(err)),
	}

	var chain []string
	root := err
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		chain = append(chain, fmt.Sprintf("%T", e))
		root = e
	}
	if len(chain) > 1 {
		fields["error_chain"] = chain
		fields["error_cause"] = root.Error()
	}

	var pg pgDiagnostics
	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case stderrors.As(err, &pgxErr):
		pg = pgDiagnostics{pgxErr.Code, pgxErr.ConstraintName, pgxErr.TableName, pgxErr.Detail}
	case stderrors.As(err, &pqErr):
		pg = pgDiagnostics{string(pqErr.Code), pqErr.Constraint, pqErr.Table, pqErr.Detail}
	}
	pg.addTo(fields)
	return fields
}

type pgDiagnostics struct {
	code, constraint, table, detail string
}

func (d pgDiagnostics) addTo(fields map[string]any) {
	for k, v := range map[string]string{
		"pg_code":       d.code,
		"pg_constraint": d.constraint,
		"pg_table":      d.table,
		"pg_detail":     d.detail,
	} {
		if v != "" {
			fields[k] = v
		}
	}
}
