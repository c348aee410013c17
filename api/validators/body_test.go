package validators

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeInput struct {
	GasStationID string    `json:"gasStationId" validate:"required"`
	StartDate    time.Time `json:"startDate" validate:"required"`
	EndDate      time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
}

type itemsInput struct {
	Items []struct {
		FuelGrade string `json:"fuelGrade" validate:"required,oneof=regular plus premium diesel"`
	} `json:"items" validate:"required,min=1,dive"`
}

func TestDecodeInputFromQuery(t *testing.T) {
	input := `{"gasStationId":"s-1","startDate":"2026-01-01T00:00:00Z","endDate":"2026-01-31T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodGet, "/api/rpc/shifts.byDateRange?input="+url.QueryEscape(input), nil)

	var dest rangeInput
	require.NoError(t, DecodeInput(req, &dest))
	assert.Equal(t, "s-1", dest.GasStationID)
	assert.Equal(t, 2026, dest.EndDate.Year())
}

func TestDecodeInputFromBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/x", strings.NewReader(`{"items":[{"fuelGrade":"diesel"}]}`))

	var dest itemsInput
	require.NoError(t, DecodeInput(req, &dest))
	require.Len(t, dest.Items, 1)
}

func TestDecodeInputRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/x", strings.NewReader(`{"items":[{"fuelGrade":"diesel"}],"extra":true}`))

	var dest itemsInput
	err := DecodeInput(req, &dest)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeInputMissingRunsRequiredChecks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/rpc/x", nil)

	var dest rangeInput
	err := DecodeInput(req, &dest)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["gasStationId"])
	assert.Equal(t, "is required", details["startDate"])
}

func TestDecodeInputReportsNestedFieldPaths(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/x", strings.NewReader(`{"items":[{"fuelGrade":"kerosene"}]}`))

	var dest itemsInput
	typed := pkgerrors.As(DecodeInput(req, &dest))
	require.NotNil(t, typed)
	details := typed.Details().(map[string]string)
	assert.Contains(t, details["items[0].fuelGrade"], "must be one of")
}

func TestDecodeInputRangeOrdering(t *testing.T) {
	body := `{"gasStationId":"s-1","startDate":"2026-02-01T00:00:00Z","endDate":"2026-01-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/x", strings.NewReader(body))

	var dest rangeInput
	typed := pkgerrors.As(DecodeInput(req, &dest))
	require.NotNil(t, typed)
	details := typed.Details().(map[string]string)
	assert.Contains(t, details, "endDate")
}
