package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/cartesiandb/federation-registry-server/internal/api"
	"github.com/cartesiandb/federation-registry-server/internal/auth"
	"github.com/cartesiandb/federation-registry-server/internal/config"
	"github.com/cartesiandb/federation-registry-server/internal/fdw"
	"github.com/cartesiandb/federation-registry-server/internal/service/fedsvc"
	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the federation registry API server",
	Long: `Start the federation registry API server.

The server requires a configuration file (--config) that specifies:
- The engine connection (host, user, database, password source)
- The API keys and the database roles they act as
- The HTTP listener address`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 30 * time.Second // schema imports can be slow on large remotes
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 35 * time.Second // must exceed serverRequestTimeout so the middleware answers first
	serverIdleTimeout      = 60 * time.Second

	engineConnectTimeout = 2 * time.Minute
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides the config file)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

// connectEngine opens the engine pool and waits for it to answer a ping. The
// engine frequently comes up after the registry in orchestrated deployments,
// so the first ping is retried with exponential backoff.
func connectEngine(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	connString, err := cfg.Engine.GetConnectionString()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine pool: %w", err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			logger.Warnf("Engine not reachable yet, retrying: %v", pingErr)
			return struct{}{}, pingErr
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(engineConnectTimeout))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("engine did not become reachable: %w", err)
	}

	return pool, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.Server.Address
	}

	logger.Infof("Starting federation registry API server on %s", address)

	pool, err := connectEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Infof("Connected to engine %s:%d/%s", cfg.Engine.Host, cfg.Engine.Port, cfg.Engine.Database)

	store, err := fdw.NewStore(fdw.WithConnectionPool(pool))
	if err != nil {
		return fmt.Errorf("failed to create federation store: %w", err)
	}

	svc, err := fedsvc.New(
		fedsvc.WithStore(store),
		fedsvc.WithTracer(otel.Tracer(fedsvc.ServiceTracerName)),
		fedsvc.WithReadinessCheck(pool.Ping),
	)
	if err != nil {
		return fmt.Errorf("failed to create federation service: %w", err)
	}

	router := api.NewServer(svc,
		api.WithAuthResolver(auth.NewStaticResolver(cfg.Auth)),
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		logger.Infof("Server listening on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}
