package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulticlub/roster-service/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "field validation",
			err:        &services.ValidationError{Fields: map[string]string{"tournamentId": "is required"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "is required",
		},
		{name: "plain validation", err: services.ErrPhotoStorageDisabled, wantStatus: http.StatusBadRequest},
		{name: "duplicate", err: services.ErrDuplicateAssignment, wantStatus: http.StatusConflict},
		{name: "email conflict", err: services.ErrPlayerEmailConflict, wantStatus: http.StatusConflict},
		{name: "roster entry not found", err: services.ErrRosterEntryNotFound, wantStatus: http.StatusNotFound, wantBody: "roster entry not found"},
		{name: "anonymous", err: services.ErrAuthenticationRequired, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: services.ErrForbiddenOperation, wantStatus: http.StatusForbidden},
		{
			name:       "storage failure hides the cause",
			err:        fmt.Errorf("%w: create roster entry: %w", services.ErrStorage, errors.New("pq: password authentication failed")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "could not process your request",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/roster", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotContains(t, rec.Body.String(), "pq:")
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Ada"}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "malformed", body: `{"name":`, wantErr: "badly-formed JSON"},
		{name: "wrong type", body: `{"name":1}`, wantErr: `incorrect JSON type for field "name"`},
		{name: "unknown key", body: `{"nickname":"A"}`, wantErr: `unknown key "nickname"`},
		{name: "two values", body: `{"name":"A"}{"name":"B"}`, wantErr: "single JSON value"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", 1_048_576) + `"}`, wantErr: "must not be larger than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := readJSON(rec, req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ada", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, writeJSON(rec, http.StatusCreated, jsonResponse{"ok": true}, http.Header{"X-Request-Id": []string{"r1"}}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "r1", rec.Header().Get("X-Request-Id"))
	var out map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out["ok"])
}
