package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Interview is an interview slot scheduled by an admin for a student.
type Interview struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyName string             `bson:"company_name" json:"company_name"`
	StudentID   string             `bson:"student_id" json:"student_id"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Location    string             `bson:"location" json:"location"`
	Mode        string             `bson:"mode" json:"mode"`
	Status      string             `bson:"status" json:"status"`
}
