package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	CollectionAdmins        = "admins"
	CollectionLeads         = "leads"
	CollectionMeetings      = "meetings"
	CollectionNotifications = "notifications"
)

type MongoDBConfig struct {
	URI      string `env:"MONGO_URI,required"`
	Database string `env:"MONGO_DATABASE" envDefault:"sdr_admin"`
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig, logger *zap.Logger) (*MongoDBClient, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(config.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", config.Database))

	lc.Append(fx.Hook{
		OnStop: func(stopCtx context.Context) error {
			logger.Info("closing MongoDB connection")
			return client.Disconnect(stopCtx)
		},
	})

	db := client.Database(config.Database)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

func (c *MongoDBClient) GetCollection(collectionName string) *mongo.Collection {
	return c.Database.Collection(collectionName)
}

// Ping reports whether the server is reachable within the caller's deadline.
func (c *MongoDBClient) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx, nil)
}

// IndexPlan lists the indexes each collection needs.
func IndexPlan() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionMeetings: {
			{Keys: bson.D{{Key: "jitsi_room_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "lead_id", Value: 1}, {Key: "scheduled_date", Value: 1}}},
			{Keys: bson.D{{Key: "admin_id", Value: 1}, {Key: "scheduled_date", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_date", Value: 1}}},
		},
		CollectionNotifications: {
			{Keys: bson.D{{Key: "admin_id", Value: 1}, {Key: "read", Value: 1}}},
			{Keys: bson.D{{Key: "admin_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}},
		},
		CollectionAdmins: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
}

// EnsureIndexes creates the IndexPlan on startup.
func EnsureIndexes(lc fx.Lifecycle, db *mongo.Database, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			for collection, models := range IndexPlan() {
				names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
				if err != nil {
					return fmt.Errorf("create indexes on %s: %w", collection, err)
				}
				logger.Info("indexes ensured", zap.String("collection", collection), zap.Strings("indexes", names))
			}
			return nil
		},
	})
}
