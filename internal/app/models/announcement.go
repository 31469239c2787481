package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a portal-wide notice. Attachment is a relative path under
// the announcements upload subdirectory, empty when none was uploaded.
type Announcement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Date       time.Time          `bson:"date" json:"date"`
	PostedBy   string             `bson:"posted_by" json:"posted_by"`
	Important  bool               `bson:"important" json:"important"`
	Attachment string             `bson:"attachment" json:"attachment"`
}
