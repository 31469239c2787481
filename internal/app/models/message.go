package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two students, addressed by
// registration number.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SenderID    string             `bson:"sender_id" json:"sender_id"`
	RecipientID string             `bson:"recipient_id" json:"recipient_id"`
	Subject     string             `bson:"subject" json:"subject"`
	Content     string             `bson:"content" json:"content"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Read        bool               `bson:"read" json:"read"`
	Attachment  string             `bson:"attachment,omitempty" json:"attachment,omitempty"`
}
