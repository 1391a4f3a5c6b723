package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in progress"
	StatusDone       TaskStatus = "done"
)

// IsValid reports whether s is one of the three board columns. Any valid
// status may be set from any other; there is no ordering between them.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Status     TaskStatus         `bson:"status" json:"status"`
	AssignedTo primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Assignee is the expanded worker reference on an admin's task listing.
type Assignee struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}

// AssignedTask is a task joined with its assignee, as served to admins.
type AssignedTask struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Status     TaskStatus         `json:"status"`
	AssignedTo Assignee           `json:"assignedTo"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
