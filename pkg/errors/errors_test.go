package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		code    Code
		status  int
		expose  bool
		details bool
	}{
		{CodeValidation, http.StatusBadRequest, true, true},
		{CodeUnauthorized, http.StatusUnauthorized, true, false},
		{CodeForbidden, http.StatusForbidden, true, false},
		{CodeNotFound, http.StatusNotFound, true, false},
		{CodeConflict, http.StatusConflict, true, false},
		{CodeStateConflict, http.StatusUnprocessableEntity, true, true},
		{CodeRateLimit, http.StatusTooManyRequests, true, false},
		{CodeInternal, http.StatusInternalServerError, false, false},
		{CodeDependency, http.StatusServiceUnavailable, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.expose, meta.ExposeMessage)
			assert.Equal(t, tt.details, meta.DetailsAllowed)
			assert.NotEmpty(t, meta.PublicMessage)
		})
	}

	assert.Equal(t, http.StatusInternalServerError, MetadataFor("NOPE").HTTPStatus)
}

func TestWrapKeepsCauseOutOfMessage(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := Wrap(CodeDependency, cause, "database unavailable").WithDetails(map[string]string{"db": "down"})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: database unavailable", err.Error())
	assert.Equal(t, "database unavailable", err.Message())
	assert.NotNil(t, err.Details())
}

func TestCodeLookupThroughWrapping(t *testing.T) {
	outer := fmt.Errorf("loading station: %w", New(CodeNotFound, "station not found"))

	assert.True(t, IsCode(outer, CodeNotFound))
	assert.False(t, IsCode(outer, CodeConflict))
	assert.Equal(t, CodeNotFound, CodeOf(outer))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain")))
	assert.Nil(t, As(nil))

	var nilErr *Error
	assert.Equal(t, CodeInternal, nilErr.Code())
	assert.Nil(t, nilErr.WithDetails("x"))
}

func TestLogFieldsPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "gas_stations_name_key", TableName: "gas_stations"}
	fields := LogFields(Wrap(CodeConflict, pgErr, "station already exists"))

	assert.Equal(t, "CONFLICT", fields["error_code"])
	assert.Equal(t, "23505", fields["pg_code"])
	assert.Equal(t, "gas_stations_name_key", fields["pg_constraint"])
	assert.NotContains(t, fields, "pg_detail")
	require.Contains(t, fields, "error_chain")
	assert.Equal(t, pgErr.Error(), fields["error_cause"])

	fields = LogFields(&pq.Error{Code: "23503", Table: "shifts"})
	assert.Equal(t, "23503", fields["pg_code"])
	assert.Equal(t, "INTERNAL_ERROR", fields["error_code"])
	assert.NotContains(t, fields, "error_chain")

	assert.Empty(t, LogFields(nil))
}
