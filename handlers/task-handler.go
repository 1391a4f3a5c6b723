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

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type CreateTaskRequest struct {
	Title      string `json:"title"`
	AssignedTo string `json:"assignedTo"`
}

type ChangeStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// CreateTask creates a task for one of the calling admin's workers.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if req.Title == "" {
		respondMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	assignedTo, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid worker ID format")
		return
	}

	task, err := h.service.CreateTask(r.Context(), principal, req.Title, assignedTo)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// GetMyTasks lists the calling worker's tasks.
func (h *TaskHandler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	tasks, err := h.service.GetMyTasks(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// GetAssignedTasks lists tasks across all of the calling admin's workers,
// each with its assignee expanded.
func (h *TaskHandler) GetAssignedTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	tasks, err := h.service.GetAssignedTasks(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// ChangeTaskStatus moves a task between board columns.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	vars := mux.Vars(r)
	taskID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	task, err := h.service.ChangeTaskStatus(r.Context(), principal, taskID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated",
		"task":    task,
	})
}

// DeleteTask removes a task belonging to one of the calling admin's workers.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	vars := mux.Vars(r)
	taskID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	if err := h.service.DeleteTask(r.Context(), principal, taskID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Task deleted successfully")
}
