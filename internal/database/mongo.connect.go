package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shop_pos/internal/common"
	"shop_pos/internal/logger"
)

// ConnectOptions configures a MongoDB client
type ConnectOptions struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// Connect opens a client and pings the primary.
// Any failure is returned as a ConnectionError and the client is released.
func Connect(ctx context.Context, opts ConnectOptions) (*mongo.Client, error) {
	if opts.URI == "" {
		return nil, common.NewConnectionError("Database connection URL is empty", nil)
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	clientOptions := options.Client().ApplyURI(opts.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetSocketTimeout(2 * timeout)
	if opts.MaxPoolSize > 0 {
		clientOptions.SetMaxPoolSize(opts.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, common.NewConnectionError("Failed to connect to MongoDB", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, common.NewConnectionError("Failed to ping MongoDB", err)
	}

	logger.GetAppLogger().WithField(logger.FieldComponent, "database").
		Infof("Successfully connected to MongoDB database %s", opts.Database)
	return client, nil
}

// Close disconnects the client; a nil client is a no-op
func Close(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	log := logger.GetAppLogger().WithField(logger.FieldComponent, "database")
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("Failed to disconnect MongoDB client")
		return common.ConvertMongoError(err)
	}
	log.Info("Successfully disconnected from MongoDB")
	return nil
}
