package health

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	config "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Config"
	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
)

// Pinger is satisfied by *mongo.Client
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// HealthChecker provides health check functionality
type HealthChecker struct {
	client Pinger
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(client Pinger) *HealthChecker {
	return &HealthChecker{client: client}
}

// PingMongo checks if the MongoDB connection is healthy
func (h *HealthChecker) PingMongo(ctx context.Context) error {
	if h == nil || h.client == nil {
		return fmt.Errorf("database connection is nil")
	}
	return h.client.Ping(ctx, readpref.Primary())
}

// CheckDatabaseHealth pings the primary with a short deadline
func (h *HealthChecker) CheckDatabaseHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := h.PingMongo(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// ConnectMongoWithTimeout creates a MongoDB connection and pings it within cfg.ConnectTimeout
func ConnectMongoWithTimeout(cfg config.DatabaseConfig) (*mongo.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	// Test the connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("unable to ping MongoDB: %w", err)
	}

	return client, nil
}

// DatabaseManager handles schema-level database operations
type DatabaseManager struct {
	db *mongo.Database
}

// NewDatabaseManager creates a new database manager
func NewDatabaseManager(db *mongo.Database) *DatabaseManager {
	return &DatabaseManager{db: db}
}

// IndexModels lists the indexes each collection needs. Names are left to the
// server default (username_1, email_1, registeredAt_-1) so existing indexes on
// the same keys are reused.
func IndexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		auth_models.AdminCollection: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		workshop_models.RegistrationCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "registeredAt", Value: -1}},
			},
		},
	}
}

// EnsureIndexes creates the required indexes if they don't exist
func (dm *DatabaseManager) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for collection, models := range IndexModels() {
		if _, err := dm.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}
	return nil
}
