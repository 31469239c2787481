package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application links one student (by registration number) to one company (by
// object id). A unique compound index on (student_id, company_id) backs the
// duplicate pre-check in the handler.
type Application struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	StudentID         string             `bson:"student_id" json:"student_id"`
	CompanyID         primitive.ObjectID `bson:"company_id" json:"company_id"`
	Status            string             `bson:"status" json:"status"`
	AppliedDate       time.Time          `bson:"applied_date" json:"applied_date"`
	StatusUpdatedDate *time.Time         `bson:"status_updated_date,omitempty" json:"status_updated_date,omitempty"`
	CoverLetter       string             `bson:"cover_letter" json:"cover_letter"`
	Portfolio         string             `bson:"portfolio" json:"portfolio"`
	Availability      string             `bson:"availability" json:"availability"`
	NoticePeriod      string             `bson:"notice_period" json:"notice_period"`
}

// CompanySummary is the company detail embedded into application listings.
type CompanySummary struct {
	Name     string `bson:"name" json:"name"`
	Logo     string `bson:"logo" json:"logo"`
	JobTitle string `bson:"job_title" json:"job_title"`
}
