package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlaBhs/kanban-devops/logging"
	"github.com/AlaBhs/kanban-devops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaskService handles the task board. Admins create and delete tasks for
// their own workers; workers move their own tasks between columns.
type TaskService struct {
	TaskCollection *mongo.Collection
	UserCollection *mongo.Collection
}

func NewTaskService(taskCollection, userCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TaskCollection: taskCollection,
		UserCollection: userCollection,
	}
}

// CreateTask creates a task in the todo column for one of the calling
// admin's workers. The ownership check happens here, at creation time only.
func (s *TaskService) CreateTask(ctx context.Context, principal models.Principal, title string, assignedTo primitive.ObjectID) (*models.Task, error) {
	if principal.Role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}

	workerFilter := bson.M{"_id": assignedTo, "role": models.RoleWorker, "admin": principal.ID}

	var worker models.User
	if err := s.UserCollection.FindOne(ctx, workerFilter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}

	now := time.Now()
	task := &models.Task{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Status:     models.StatusTodo,
		AssignedTo: worker.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.TaskCollection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s assigned to worker '%s'", task.ID.Hex(), worker.Username)
	return task, nil
}

// GetMyTasks lists the tasks assigned to the calling worker.
func (s *TaskService) GetMyTasks(ctx context.Context, principal models.Principal) ([]models.Task, error) {
	if principal.Role != models.RoleWorker {
		return nil, ErrNotAllowed
	}

	cursor, err := s.TaskCollection.Find(ctx, bson.M{"assignedTo": principal.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// GetAssignedTasks lists every task assigned to one of the calling admin's
// workers, with the assignee expanded to id and username.
func (s *TaskService) GetAssignedTasks(ctx context.Context, principal models.Principal) ([]models.AssignedTask, error) {
	if principal.Role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}

	workerCursor, err := s.UserCollection.Find(ctx, bson.M{"role": models.RoleWorker, "admin": principal.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}
	defer workerCursor.Close(ctx)

	var workers []models.User
	if err := workerCursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}

	assigned := []models.AssignedTask{}
	if len(workers) == 0 {
		return assigned, nil
	}

	usernames := make(map[primitive.ObjectID]string, len(workers))
	workerIDs := make([]primitive.ObjectID, 0, len(workers))
	for _, w := range workers {
		usernames[w.ID] = w.Username
		workerIDs = append(workerIDs, w.ID)
	}

	taskCursor, err := s.TaskCollection.Find(ctx, bson.M{"assignedTo": bson.M{"$in": workerIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer taskCursor.Close(ctx)

	var tasks []models.Task
	if err := taskCursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	for _, t := range tasks {
		assigned = append(assigned, models.AssignedTask{
			ID:     t.ID,
			Title:  t.Title,
			Status: t.Status,
			AssignedTo: models.Assignee{
				ID:       t.AssignedTo,
				Username: usernames[t.AssignedTo],
			},
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}

	return assigned, nil
}

// ChangeTaskStatus moves a task to another column. Only the assigned worker
// may do this, and any column is reachable from any other.
func (s *TaskService) ChangeTaskStatus(ctx context.Context, principal models.Principal, taskID primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	if principal.Role != models.RoleWorker {
		return nil, ErrNotAllowed
	}

	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var task models.Task
	if err := s.TaskCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}

	if task.AssignedTo != principal.ID {
		return nil, ErrNotYourTask
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := s.TaskCollection.UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrTaskNotFound
	}

	if err := s.TaskCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to retrieve updated task: %w", err)
	}

	return &task, nil
}

// DeleteTask removes a task created for one of the calling admin's workers.
// A task that exists but belongs to another admin's worker reports the same
// not-found as a missing task.
func (s *TaskService) DeleteTask(ctx context.Context, principal models.Principal, taskID primitive.ObjectID) error {
	if principal.Role != models.RoleAdmin {
		return ErrNotAllowed
	}

	var task models.Task
	if err := s.TaskCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to look up task: %w", err)
	}

	workerFilter := bson.M{"_id": task.AssignedTo, "admin": principal.ID}
	var worker models.User
	if err := s.UserCollection.FindOne(ctx, workerFilter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to look up worker: %w", err)
	}

	if _, err := s.TaskCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted by admin %s", taskID.Hex(), principal.ID.Hex())
	return nil
}
