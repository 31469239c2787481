package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a job posting. Companies are soft-deactivated by flipping
// Active to false; no path hard-deletes them.
type Company struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Logo           string             `bson:"logo" json:"logo"`
	JobTitle       string             `bson:"job_title" json:"job_title"`
	JobDescription string             `bson:"job_description" json:"job_description"`
	JobType        string             `bson:"job_type" json:"job_type"`
	WorkPlace      string             `bson:"work_place" json:"work_place"`
	Location       string             `bson:"location" json:"location"`
	Duration       string             `bson:"duration" json:"duration"`
	Stipend        int64              `bson:"stipend" json:"stipend"`
	Requirements   string             `bson:"requirements" json:"requirements"`
	PostedDate     int64              `bson:"posted_date" json:"posted_date"`
	Deadline       int64              `bson:"deadline" json:"deadline"`
	Active         bool               `bson:"active" json:"active"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
