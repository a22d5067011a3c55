// Package mongo implements the document-store ports over MongoDB.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/pkg/errors"
)

// Client wraps a connected mongo database handle.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects and pings the deployment.  The context bounds the
// initial connection attempt.
func NewClient(ctx context.Context, cfg config.MongoConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize)

	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "connect to mongodb")
	}
	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "ping mongodb")
	}
	return &Client{client: cli, db: cli.Database(cfg.Database)}, nil
}

// Database exposes the underlying database handle.
func (c *Client) Database() *mongo.Database { return c.db }

// Close disconnects from the deployment.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "disconnect from mongodb")
	}
	return nil
}

// Ping verifies the connection is still healthy.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "ping mongodb")
	}
	return nil
}
