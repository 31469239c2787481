package db

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/savi/placement-portal/internal/pkg/logger"
)

// Collection validators. Each collection carries a $jsonSchema describing
// its required fields and types; documents failing validation are rejected
// by the server.
var collectionValidators = map[string]bson.M{
	CollStudents: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"registration_no", "email_id", "password", "name", "registered"},
			"properties": bson.M{
				"registration_no": bson.M{"bsonType": "string", "description": "nine-digit registration number"},
				"email_id":        bson.M{"bsonType": "string"},
				"password":        bson.M{"bsonType": "string"},
				"name":            bson.M{"bsonType": "string"},
				"registered":      bson.M{"bsonType": "bool"},
				"skills": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"technical":     bson.M{"bsonType": "array"},
						"non_technical": bson.M{"bsonType": "array"},
					},
				},
				"experience":     bson.M{"bsonType": "array"},
				"projects":       bson.M{"bsonType": "array"},
				"certifications": bson.M{"bsonType": "array"},
				"companies": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"applied":                 bson.M{"bsonType": "array"},
						"rejected":                bson.M{"bsonType": "array"},
						"interviews_attended":     bson.M{"bsonType": "array"},
						"interviews_not_attended": bson.M{"bsonType": "array"},
					},
				},
			},
		},
	},
	CollCompanies: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"name", "job_title", "active"},
			"properties": bson.M{
				"name":      bson.M{"bsonType": "string"},
				"job_title": bson.M{"bsonType": "string"},
				"active":    bson.M{"bsonType": "bool"},
			},
		},
	},
	CollApplications: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"student_id", "company_id", "status"},
			"properties": bson.M{
				"student_id": bson.M{"bsonType": "string"},
				"company_id": bson.M{"bsonType": "objectId"},
				"status":     bson.M{"enum": []string{"pending", "approved", "rejected"}},
			},
		},
	},
	CollAnnouncements: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"title", "content", "date", "posted_by"},
			"properties": bson.M{
				"title":     bson.M{"bsonType": "string"},
				"content":   bson.M{"bsonType": "string"},
				"posted_by": bson.M{"bsonType": "string"},
				"important": bson.M{"bsonType": "bool"},
			},
		},
	},
	CollMessages: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"sender_id", "recipient_id", "content", "timestamp", "read"},
			"properties": bson.M{
				"sender_id":    bson.M{"bsonType": "string"},
				"recipient_id": bson.M{"bsonType": "string"},
				"content":      bson.M{"bsonType": "string"},
				"read":         bson.M{"bsonType": "bool"},
			},
		},
	},
	CollNotifications: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"recipient_id", "title", "message", "type", "read"},
			"properties": bson.M{
				"recipient_id": bson.M{"bsonType": "string"},
				"title":        bson.M{"bsonType": "string"},
				"message":      bson.M{"bsonType": "string"},
				"type":         bson.M{"bsonType": "string"},
				"read":         bson.M{"bsonType": "bool"},
			},
		},
	},
	CollInterviews: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"company_name", "student_id", "date", "status"},
			"properties": bson.M{
				"company_name": bson.M{"bsonType": "string"},
				"student_id":   bson.M{"bsonType": "string"},
				"status":       bson.M{"enum": []string{"scheduled", "completed", "cancelled", "missed"}},
			},
		},
	},
	CollAdmins: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"username", "password", "is_active"},
			"properties": bson.M{
				"username":  bson.M{"bsonType": "string"},
				"password":  bson.M{"bsonType": "string"},
				"is_active": bson.M{"bsonType": "bool"},
			},
		},
	},
	CollFaculty: {
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"faculty_id", "email_id", "password", "name"},
			"properties": bson.M{
				"faculty_id": bson.M{"bsonType": "string"},
				"email_id":   bson.M{"bsonType": "string"},
				"password":   bson.M{"bsonType": "string"},
				"name":       bson.M{"bsonType": "string"},
			},
		},
	},
}

// SetupCollections applies the JSON schema validators, creating each
// collection when missing and running collMod when it already exists.
func (m *Mongo) SetupCollections(ctx context.Context) error {
	for name, validator := range collectionValidators {
		opts := options.CreateCollection().SetValidator(validator)
		err := m.Database.CreateCollection(ctx, name, opts)
		if err == nil {
			continue
		}
		if isNamespaceExists(err) {
			cmd := bson.D{
				{Key: "collMod", Value: name},
				{Key: "validator", Value: validator},
			}
			if err := m.Database.RunCommand(ctx, cmd).Err(); err != nil {
				logger.Warn().Err(err).Str("collection", name).Msg("Failed to update collection validator")
			}
			continue
		}
		return err
	}

	logger.Info().Int("collections", len(collectionValidators)).Msg("Collection validators applied")
	return nil
}

// EnsureIndexes creates the unique indexes the application relies on:
// students are unique by registration number and email, and a student can
// hold at most one application per company.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	studentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registration_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := m.Collection(CollStudents).Indexes().CreateMany(ctx, studentIndexes); err != nil {
		return err
	}

	applicationIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "company_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.Collection(CollApplications).Indexes().CreateOne(ctx, applicationIndex); err != nil {
		return err
	}

	notificationIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "read", Value: 1}},
	}
	if _, err := m.Collection(CollNotifications).Indexes().CreateOne(ctx, notificationIndex); err != nil {
		return err
	}

	logger.Info().Msg("Indexes ensured")
	return nil
}

func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// 48 is NamespaceExists
		return cmdErr.Code == 48
	}
	return strings.Contains(err.Error(), "NamespaceExists") || strings.Contains(err.Error(), "already exists")
}
