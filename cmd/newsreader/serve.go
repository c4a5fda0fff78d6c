package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Harsha6202/personalized-news-sentiment/internal/api"
	"github.com/Harsha6202/personalized-news-sentiment/internal/api/handler"
	"github.com/Harsha6202/personalized-news-sentiment/internal/core/service"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/notify"
	"github.com/Harsha6202/personalized-news-sentiment/internal/infrastructure/queue"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local API for the reader UI",
		Long: `Restore the persisted session and serve the local JSON API: session
transitions, the route guard, notifications and the guarded feed endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	cfg, log, err := setup(cmd, "newsreader")
	if err != nil {
		return err
	}
	if addr == "" {
		addr = ":" + cfg.Port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inbox := notify.NewInbox(0)
	dispatcher := queue.NewDispatcher(cfg.NotificationBuffer, log, inbox, notify.NewLogSink(log))
	dispatcher.Start(ctx)
	defer func() {
		stop()
		<-dispatcher.Done()
	}()

	c, err := newClient(ctx, cfg, dispatcher, log)
	if err != nil {
		return err
	}
	defer c.Close()

	guard, err := service.NewRouteGuard(c.session, dispatcher, cfg.ProtectedRoutes, log)
	if err != nil {
		return fmt.Errorf("route guard: %w", err)
	}
	defer guard.Close()

	news := service.NewNewsService(c.gateway, c.session, dispatcher, log)

	probes := map[string]handler.Probe{
		"graphql": handler.EndpointProbe(cfg.GraphQLEndpoint, nil),
	}
	if c.redis != nil {
		probes["redis"] = handler.RedisProbe(c.redis)
	}

	e := api.NewRouter(api.Dependencies{
		Session: c.session,
		News:    news,
		Guard:   guard,
		Inbox:   inbox,
		Probes:  probes,
		Log:     log,
	})

	// The guard answers show_loading until this settles.
	go func() {
		st := c.session.Restore(ctx)
		log.Info().Str("phase", string(st.Phase())).Msg("session restored")
	}()

	return runServer(ctx, e, addr, log)
}
