package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a privileged account stored in the admins collection. A
// config-supplied bootstrap credential path also exists outside this
// collection for first-run access.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	AccessKey string             `bson:"access_key" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogin *time.Time         `bson:"last_login" json:"last_login"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
}

// Faculty is a faculty account, looked up by faculty id during role
// resolution.
type Faculty struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FacultyID string             `bson:"faculty_id" json:"faculty_id"`
	Name      string             `bson:"name" json:"name"`
	EmailID   string             `bson:"email_id" json:"email_id"`
	Password  string             `bson:"password" json:"-"`
}
