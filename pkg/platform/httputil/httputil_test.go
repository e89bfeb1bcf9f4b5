package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vayva/pkg/domain-errors"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation maps to 400", dErrors.New(dErrors.CodeValidation, "bad input"), http.StatusBadRequest, "validation_error"},
		{"unauthorized maps to 401", dErrors.New(dErrors.CodeUnauthorized, "no token"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden maps to 403", dErrors.New(dErrors.CodeForbidden, "nope"), http.StatusForbidden, "forbidden"},
		{"not found maps to 404", dErrors.New(dErrors.CodeNotFound, "missing"), http.StatusNotFound, "not_found"},
		{"conflict maps to 409", dErrors.New(dErrors.CodeConflict, "state moved"), http.StatusConflict, "conflict"},
		{"not ready maps to 409", dErrors.New(dErrors.CodeNotReady, "blocked"), http.StatusConflict, "not_ready"},
		{"plain errors map to 500", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)

			var envelope map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
			assert.Equal(t, tc.code, envelope["error"])
		})
	}
}

// TestWriteErrorInternalOmitsDescription verifies infrastructure detail never
// leaks to clients.
func TestWriteErrorInternalOmitsDescription(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to load store"))

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "internal_error", envelope["error"])
	assert.NotContains(t, envelope, "error_description")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWriteErrorCarriesDetails(t *testing.T) {
	payload := map[string]string{"level": "blocked"}
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.New(dErrors.CodeNotReady, "store is not ready").WithDetails(payload))

	var envelope struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "not_ready", envelope.Error)
	assert.Equal(t, payload, envelope.Details)
}
