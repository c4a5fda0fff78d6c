package main

import (
	"context"
	"fmt"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/ports"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/service"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/config"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/db/file"
	redisdb "github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/db/redis"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/graphql"
)

// client is the wired session core shared by serve and the one-shot
// commands.
type client struct {
	gql     *graphql.Client
	gateway *graphql.Gateway
	store   ports.CredentialStore
	redis   *goredis.Client // nil unless the redis backend is selected
	session *service.SessionService
}

func newClient(ctx context.Context, cfg *config.Config, notifier ports.Notifier, log zerolog.Logger) (*client, error) {
	c := &client{}

	switch cfg.CredentialBackend {
	case config.BackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
		c.redis = rdb
		c.store = redisdb.NewCredentialStore(rdb)
	default:
		c.store = file.NewCredentialStore(cfg.CredentialDir)
	}

	c.gql = graphql.NewClient(cfg.GraphQLEndpoint, &http.Client{}, log)
	c.gateway = graphql.NewGateway(c.gql)
	c.session = service.NewSessionService(c.gateway, c.store, notifier, log)
	return c, nil
}

func (c *client) Close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
}
