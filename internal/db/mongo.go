package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/savi/placement-portal/internal/config"
	"github.com/savi/placement-portal/internal/pkg/helpers"
	"github.com/savi/placement-portal/internal/pkg/logger"
)

// Collection names used across the application.
const (
	CollStudents      = "students"
	CollCompanies     = "companies"
	CollApplications  = "applications"
	CollAnnouncements = "announcements"
	CollMessages      = "messages"
	CollNotifications = "notifications"
	CollInterviews    = "interviews"
	CollAdmins        = "admins"
	CollFaculty       = "faculty"
)

// Mongo wraps the client and database handle shared by all repositories.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo connects to the configured MongoDB deployment and verifies the
// connection with a ping.
func NewMongo(cfg *config.Config) (*Mongo, error) {
	timeout := helpers.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info().Str("db", cfg.Database.Name).Msg("MongoDB connection established")

	return &Mongo{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
	}, nil
}

// Collection returns a handle to a named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// Ping checks database connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// CollectionNames lists the collections present in the database.
func (m *Mongo) CollectionNames(ctx context.Context) ([]string, error) {
	return m.Database.ListCollectionNames(ctx, map[string]interface{}{})
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
