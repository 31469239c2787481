package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is created internally when other actions occur (application
// status change, new announcement, new message, interview scheduling); there
// is no public creation endpoint.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RecipientID string             `bson:"recipient_id" json:"recipient_id"`
	Title       string             `bson:"title" json:"title"`
	Message     string             `bson:"message" json:"message"`
	Type        string             `bson:"type" json:"type"`
	RelatedID   string             `bson:"related_id,omitempty" json:"related_id,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Read        bool               `bson:"read" json:"read"`
}
