package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quiz-player/internal/app"
	"quiz-player/internal/config"
	"quiz-player/internal/infra/memory"
	redisinfra "quiz-player/internal/infra/redis"
	transport "quiz-player/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	source := contentSource(cfg, b)

	// fail fast on broken content instead of on the first connection
	if _, err := app.LoadContent(ctx, source); err != nil {
		return err
	}

	var plays app.PlayRegistry = memory.NewPlayRegistry()
	if b.redis != nil {
		plays = redisinfra.NewPlayRegistry(b.redis, config.Duration(cfg.Redis.TTL, 10*time.Minute))
	}

	wsHandler := transport.NewWSHandler(source, plays, engineOptions(cfg)...)
	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(wsHandler, plays, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz player on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
