package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Harsha6202/personalized-news-sentiment/internal/devapi"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/config"
	mongodb "github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/db/mongo"
)

// NewDevAPICmd creates the devapi subcommand.
func NewDevAPICmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "devapi",
		Short: "Run the development GraphQL backend",
		Long: `Run a local GraphQL backend implementing every operation the client
sends. Verification tokens are written to the log instead of being mailed.
A verified demo account and six sample articles are seeded on start.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDevAPI(cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$DEVAPI_PORT)")
	return cmd
}

type devStorage struct {
	accounts devapi.AccountRepository
	articles devapi.ArticleRepository
	reading  devapi.ReadingStateRepository
	close    func()
}

func openDevStorage(ctx context.Context, cfg *config.Config) (*devStorage, error) {
	if cfg.DevAPI.Storage != config.StorageMongo {
		return &devStorage{
			accounts: devapi.NewMemoryAccounts(),
			articles: devapi.NewMemoryArticles(),
			reading:  devapi.NewMemoryReadingState(),
			close:    func() {},
		}, nil
	}

	store, err := mongodb.Open(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	return &devStorage{
		accounts: store.Accounts,
		articles: store.Articles,
		reading:  store.Reading,
		close:    func() { _ = store.Close(context.Background()) },
	}, nil
}

func runDevAPI(cmd *cobra.Command, addr string) error {
	cfg, log, err := setup(cmd, "newsreader-devapi")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = ":" + cfg.DevAPI.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := openDevStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.close()

	svc := devapi.NewService(storage.accounts, storage.articles, storage.reading, cfg.DevAPI.JWTSecret, cfg.DevAPI.TokenTTL, log)
	if err := svc.Seed(ctx, cfg.DevAPI.SeedEmail, cfg.DevAPI.SeedPass); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	return runServer(ctx, devapi.NewServer(svc, log).Router(), addr, log)
}
