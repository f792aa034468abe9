package database

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "aed_locator"

// ConnectMongo connects and pings MongoDB. dbName overrides the database
// named in the URI path; when both are empty "aed_locator" is used.
func ConnectMongo(ctx context.Context, mongoURI, dbName string, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	// Use longer timeout for Atlas connections
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Info().Str("uri", MaskURI(mongoURI)).Msg("connecting to MongoDB")
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	if dbName == "" {
		dbName = databaseFromURI(mongoURI)
	}

	log.Info().Str("database", dbName).Msg("connected to MongoDB")
	return client, client.Database(dbName), nil
}

// DisconnectMongo closes the client, waiting at most ten seconds.
func DisconnectMongo(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// databaseFromURI extracts the database from mongodb://host/db?opts.
func databaseFromURI(mongoURI string) string {
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		dbPart := strings.Split(parts[len(parts)-1], "?")[0]
		if dbPart != "" {
			return dbPart
		}
	}
	return defaultMongoDatabase
}

// MaskURI hides the password of a user:password@host connection string.
func MaskURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	scheme := strings.Index(uri, "://")
	start := 0
	if scheme != -1 {
		start = scheme + 3
	}
	userinfo := uri[start:at]
	colon := strings.Index(userinfo, ":")
	if colon == -1 {
		return uri
	}
	return uri[:start] + userinfo[:colon] + ":***" + uri[at:]
}
