package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlaBhs/kanban-devops/logging"
	"github.com/AlaBhs/kanban-devops/models"
	"github.com/AlaBhs/kanban-devops/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles accounts: open admin registration, login, and the
// worker directory an admin manages under their own account.
type UserService struct {
	UserCollection *mongo.Collection
	TaskCollection *mongo.Collection
}

func NewUserService(userCollection, taskCollection *mongo.Collection) *UserService {
	return &UserService{
		UserCollection: userCollection,
		TaskCollection: taskCollection,
	}
}

// RegisterUser creates an admin account and returns a session token for it.
// Self-registration always produces an admin; workers only come into being
// through CreateWorker.
func (s *UserService) RegisterUser(ctx context.Context, username, password string) (string, string, error) {
	var existing models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&existing)
	if err == nil {
		return "", "", ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", "", fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		// The unique index closes the race between the pre-check and insert.
		if mongo.IsDuplicateKeyError(err) {
			return "", "", ErrUsernameTaken
		}
		return "", "", fmt.Errorf("failed to save user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: New admin account '%s' registered", username)
	return token, user.Role, nil
}

// LoginUser verifies credentials and returns the account plus a fresh token.
// Unknown usernames and bad passwords are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (models.User, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

// CreateWorker creates a worker account owned by the calling admin. The
// owning-admin reference is stamped here and never changes afterwards.
func (s *UserService) CreateWorker(ctx context.Context, principal models.Principal, username, password string) (models.WorkerSummary, error) {
	if principal.Role != models.RoleAdmin {
		return models.WorkerSummary{}, ErrNotAllowed
	}

	var existing models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&existing)
	if err == nil {
		return models.WorkerSummary{}, ErrUsernameTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.WorkerSummary{}, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.WorkerSummary{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	admin := principal.ID
	worker := models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Password:  string(hashed),
		Role:      models.RoleWorker,
		Admin:     &admin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.UserCollection.InsertOne(ctx, worker); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.WorkerSummary{}, ErrUsernameTaken
		}
		return models.WorkerSummary{}, fmt.Errorf("failed to save worker: %w", err)
	}

	logging.Logger.Infof("Event ID: WORKER_CREATED, Description: Worker '%s' created under admin %s", username, principal.ID.Hex())
	return models.WorkerSummary{ID: worker.ID, Username: worker.Username}, nil
}

// GetMyWorkers lists the calling admin's workers, projected to id and
// username only.
func (s *UserService) GetMyWorkers(ctx context.Context, principal models.Principal) ([]models.WorkerSummary, error) {
	if principal.Role != models.RoleAdmin {
		return nil, ErrNotAllowed
	}

	filter := bson.M{"role": models.RoleWorker, "admin": principal.ID}
	projection := options.Find().SetProjection(bson.M{"_id": 1, "username": 1})

	cursor, err := s.UserCollection.Find(ctx, filter, projection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := []models.WorkerSummary{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}

	return workers, nil
}

// DeleteWorker removes a worker owned by the calling admin together with all
// tasks assigned to it. Tasks go first; if the account delete then fails the
// tasks stay gone, an accepted inconsistency window since there is no
// cross-collection transaction here.
func (s *UserService) DeleteWorker(ctx context.Context, principal models.Principal, workerID primitive.ObjectID) error {
	if principal.Role != models.RoleAdmin {
		return ErrNotAllowed
	}

	filter := bson.M{"_id": workerID, "role": models.RoleWorker, "admin": principal.ID}

	var worker models.User
	if err := s.UserCollection.FindOne(ctx, filter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrWorkerNotFound
		}
		return fmt.Errorf("failed to look up worker: %w", err)
	}

	tasksResult, err := s.TaskCollection.DeleteMany(ctx, bson.M{"assignedTo": worker.ID})
	if err != nil {
		return fmt.Errorf("failed to delete worker tasks: %w", err)
	}

	if _, err := s.UserCollection.DeleteOne(ctx, bson.M{"_id": worker.ID}); err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	logging.Logger.Infof("Event ID: WORKER_DELETED, Description: Worker '%s' deleted with %d task(s)", worker.Username, tasksResult.DeletedCount)
	return nil
}
