package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkaran/planetary-api/internal/api"
	"github.com/mkaran/planetary-api/internal/factory"
	"github.com/mkaran/planetary-api/internal/services/auth"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", cfg.Host, "Listen host (env: HOST)")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Listen port (env: PORT)")
	cmd.Flags().StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Token signing secret (env: JWT_SECRET)")

	return cmd
}

func runServe(ctx context.Context) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StorageType == factory.StorageTypePostgres {
		if err := cfg.requireDatabaseURL(); err != nil {
			return err
		}
	}

	authCfg := auth.DefaultConfig()
	authCfg.Secret = cfg.JWTSecret

	app, err := factory.New(ctx, factory.Config{
		AuthConfig:  authCfg,
		Logger:      logger,
		StorageType: cfg.StorageType,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		PlanetService: app.PlanetService,
		UserService:   app.UserService,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
