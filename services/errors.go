package services

import "errors"

// Domain errors returned by the services. Handlers translate these into
// status codes and stable response messages; anything else becomes a 500.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so that login failures do not reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken = errors.New("username already taken")

	// ErrNotAllowed is a role gate failure: the caller is authenticated but
	// the operation requires a different role.
	ErrNotAllowed = errors.New("insufficient permissions")

	// ErrWorkerNotFound is returned both when the worker does not exist and
	// when it belongs to another admin, so admins cannot probe for workers
	// outside their own account.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrTaskNotFound follows the same collapsing rule as ErrWorkerNotFound.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotYourTask is returned to a worker touching a task assigned to
	// someone else.
	ErrNotYourTask = errors.New("not your task")

	ErrInvalidStatus = errors.New("invalid status value")
)
