package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlaBhs/kanban-devops/logging"
	"github.com/AlaBhs/kanban-devops/services"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps a domain error to a status code and a stable message.
// Anything unrecognized is logged and reported as a bare 500 so internals
// never reach the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		respondMessage(w, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotAllowed):
		respondMessage(w, http.StatusForbidden, "Access forbidden: insufficient permissions")
	case errors.Is(err, services.ErrWorkerNotFound):
		respondMessage(w, http.StatusNotFound, "Worker not found")
	case errors.Is(err, services.ErrTaskNotFound):
		respondMessage(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, services.ErrNotYourTask):
		respondMessage(w, http.StatusForbidden, "Not your task")
	case errors.Is(err, services.ErrInvalidStatus):
		respondMessage(w, http.StatusBadRequest, "Invalid status value")
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
