package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) FailureBody {
	t.Helper()
	var body Failure
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "North"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"name":"North"}}`, rec.Body.String())
}

func TestWriteSuccessNullData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, nil)
	assert.JSONEq(t, `{"data":null}`, rec.Body.String())
}

func TestWriteErrorExposesMessageAndDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "invalid input").
		WithDetails(map[string]string{"name": "is required"})
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeFailure(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "invalid input", body.Message)
	assert.Equal(t, map[string]any{"name": "is required"}, body.Details)
}

func TestWriteErrorDependencyMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database not configured", decodeFailure(t, rec).Message)
}

func TestWriteErrorHidesInternalCause(t *testing.T) {
	var logs bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &logs})

	rec := httptest.NewRecorder()
	WriteError(context.Background(), logg, rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeFailure(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "internal server error", body.Message)
	assert.Nil(t, body.Details)
	assert.Contains(t, logs.String(), "password authentication failed")
}

func TestWriteErrorInternalDetailsDropped(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInternal, "query failed").WithDetails("select ...")
	WriteError(context.Background(), nil, rec, err)

	body := decodeFailure(t, rec)
	assert.Equal(t, "internal server error", body.Message)
	assert.Nil(t, body.Details)
}
