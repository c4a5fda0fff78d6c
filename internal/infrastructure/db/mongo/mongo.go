// Package mongo persists development backend accounts, articles and reading
// state.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "newsreader-devapi"
)

// Config names the deployment and database holding the backend collections.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store owns the client and the three repositories built on its database.
type Store struct {
	client *mongo.Client

	Accounts *AccountRepository
	Articles *ArticleRepository
	Reading  *ReadingStateRepository
}

// Open connects, pings and prepares the indexes every repository relies on.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName(appName))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client:   client,
		Accounts: NewAccountRepository(db),
		Articles: NewArticleRepository(db),
		Reading:  NewReadingStateRepository(db),
	}
	if err := s.Accounts.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("account indexes: %w", err)
	}
	if err := s.Articles.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("article indexes: %w", err)
	}
	return s, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
