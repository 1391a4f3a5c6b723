package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

type User struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username  string              `bson:"username" json:"username"`
	Password  string              `bson:"password" json:"password,omitempty"`
	Role      string              `bson:"role" json:"role"`
	Admin     *primitive.ObjectID `bson:"admin,omitempty" json:"admin,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// WorkerSummary is the projection returned to admins for their workers.
// The password hash never leaves the service.
type WorkerSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
}

// Principal is the caller identity resolved from a verified token.
// Role is trusted as of token issuance; there is no per-request DB re-check.
type Principal struct {
	ID   primitive.ObjectID
	Role string
}
