package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlaBhs/kanban-devops/services"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"duplicate username", services.ErrUsernameTaken, http.StatusBadRequest, "Username already taken"},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"role mismatch", services.ErrNotAllowed, http.StatusForbidden, "Access forbidden: insufficient permissions"},
		{"worker missing", services.ErrWorkerNotFound, http.StatusNotFound, "Worker not found"},
		{"task missing", services.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"foreign task", services.ErrNotYourTask, http.StatusForbidden, "Not your task"},
		{"bad status", services.ErrInvalidStatus, http.StatusBadRequest, "Invalid status value"},
		{"unexpected", errors.New("mongo exploded: internal detail"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}

			var body struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
			}
			if body.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body.Message)
			}
		})
	}
}

func TestRespondErrorNeverLeaksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("connection string mongodb://secret@host"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); len(got) > 0 && (got != "{\"message\":\"Internal server error\"}\n") {
		t.Fatalf("internal details leaked into response: %q", got)
	}
}
