package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"spiceshop/internal/retry"
)

// Connect opens a client and verifies the connection with a bounded retry,
// so a briefly unreachable database does not kill the process on boot.
func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	err = retry.Do(ctx, func() error {
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		defer pingCancel()
		return client.Ping(pingCtx, readpref.Primary())
	}, retry.Always)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
