package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AlaBhs/kanban-devops/middleware"
	"github.com/AlaBhs/kanban-devops/models"
	"github.com/AlaBhs/kanban-devops/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CreateWorkerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register opens an admin account. Asking for a worker role here is refused;
// workers are created by their admin through CreateWorker.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if req.Role == models.RoleWorker {
		respondMessage(w, http.StatusForbidden, "Only admins can create workers")
		return
	}

	token, role, err := h.UserService.RegisterUser(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"token": token, "role": role})
}

// CreateWorker creates a worker account under the calling admin.
func (h *UserHandler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	worker, err := h.UserService.CreateWorker(r.Context(), principal, req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Worker created",
		"worker":  worker,
	})
}

// GetMyWorkers lists the calling admin's workers.
func (h *UserHandler) GetMyWorkers(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	workers, err := h.UserService.GetMyWorkers(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workers)
}

// DeleteWorker removes one of the calling admin's workers and its tasks.
func (h *UserHandler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	vars := mux.Vars(r)
	workerID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid worker ID format")
		return
	}

	if err := h.UserService.DeleteWorker(r.Context(), principal, workerID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Worker deleted successfully")
}
