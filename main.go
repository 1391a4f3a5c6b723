package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/AlaBhs/kanban-devops/db"
	"github.com/AlaBhs/kanban-devops/handlers"
	"github.com/AlaBhs/kanban-devops/logging"
	"github.com/AlaBhs/kanban-devops/middleware"
	"github.com/AlaBhs/kanban-devops/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func enableCORS(next http.Handler) http.Handler {
	allowedOrigin := os.Getenv("CLIENT_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func newRouter(userService *services.UserService, taskService *services.TaskService) *mux.Router {
	userHandler := handlers.NewUserHandler(userService)
	loginHandler := handlers.NewLoginHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("API is running..."))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/users/register", userHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/users/login", loginHandler.Login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)
	protected.HandleFunc("/api/users/my-workers", userHandler.GetMyWorkers).Methods(http.MethodGet)
	protected.HandleFunc("/api/users/create-worker", userHandler.CreateWorker).Methods(http.MethodPost)
	protected.HandleFunc("/api/users/{id}", userHandler.DeleteWorker).Methods(http.MethodDelete)

	protected.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/api/tasks", taskHandler.GetMyTasks).Methods(http.MethodGet)
	protected.HandleFunc("/api/tasks/assigned", taskHandler.GetAssignedTasks).Methods(http.MethodGet)
	protected.HandleFunc("/api/tasks/{id}", taskHandler.ChangeTaskStatus).Methods(http.MethodPut)
	protected.HandleFunc("/api/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	return r
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting kanban backend...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: JWT_SECRET is not set in the environment variables.")
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "kanban"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.Connect(ctx, mongoURI)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: %v", err)
	}
	defer client.Disconnect(ctx)
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	userCollection := client.Database(mongoDBName).Collection("users")
	taskCollection := client.Database(mongoDBName).Collection("tasks")

	if err := db.EnsureIndexes(ctx, userCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	userService := services.NewUserService(userCollection, taskCollection)
	taskService := services.NewTaskService(taskCollection, userCollection)

	r := newRouter(userService, taskService)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
