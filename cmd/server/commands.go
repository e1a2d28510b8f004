package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mineral-catalog-service/internal/app/routes"
	"mineral-catalog-service/internal/benchmark"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/domain/services/container"
	"mineral-catalog-service/internal/infrastructure/config"
	"mineral-catalog-service/internal/infrastructure/database"
	Logger "mineral-catalog-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var (
	migrateMode   string
	adminUsername string
	adminPassword string

	benchURL         string
	benchPath        string
	benchConcurrency int
	benchRequests    int
	benchUser        string
	benchPassword    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the schema migration and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, pool, err := bootstrap()
		if err != nil {
			return err
		}
		defer pool.Close()

		mode := migrateMode
		if mode == "" {
			mode = cfg.DBMigrationMode
		}
		if err := database.Migrate(pool.GetDB(), mode); err != nil {
			return err
		}
		Logger.Info("migration finished (mode %s)", mode)
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, pool, err := bootstrap()
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.AutoMigrate(pool.GetDB()); err != nil {
			return err
		}
		users := services.NewUserService(pool.GetDB(), cfg, services.NewJWTService(cfg))
		user, err := users.CreateAdmin(adminUsername, adminPassword)
		if err != nil {
			return err
		}
		Logger.Info("created admin %s (id %d)", user.Username, user.ID)
		return nil
	},
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Load test a running server",
	Long: `Load test a running server with concurrent GET requests.

The server limits /api to RATE_LIMIT_RPS requests per second per client IP
(burst RATE_LIMIT_BURST, default 20/40). A bench run from one machine shares a
single bucket, so most requests beyond the burst come back 429. Those are
reported as "rate limited" and do not fail the run. Start the server with
RATE_LIMIT_RPS=0 to measure without the limiter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b := benchmark.NewAPIBenchmark(benchURL, benchConcurrency, benchRequests, "")
		if benchUser != "" {
			token, err := b.Login(ctx, benchUser, benchPassword)
			if err != nil {
				return err
			}
			b.AuthToken = token
		}
		res := b.RunGET(ctx, benchPath)
		res.Print(cmd.OutOrStdout())
		if res.RateLimited > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d requests were rate limited; set RATE_LIMIT_RPS=0 on the server to disable the limiter\n", res.RateLimited)
		}
		if res.FailureCount > 0 {
			return fmt.Errorf("%d of %d requests failed", res.FailureCount, res.TotalRequests)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateMode, "mode", "", `migration mode, "auto" or "drop" (defaults to DB_MIGRATION_MODE)`)

	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")

	benchCmd.Flags().StringVar(&benchURL, "url", "http://localhost:8080/api", "API base URL")
	benchCmd.Flags().StringVar(&benchPath, "path", "/v1/minerals", "path to request")
	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", 10, "requests in flight")
	benchCmd.Flags().IntVar(&benchRequests, "requests", 100, "total requests")
	benchCmd.Flags().StringVar(&benchUser, "user", "", "log in as this user first")
	benchCmd.Flags().StringVar(&benchPassword, "password", "", "password for --user")
}

// bootstrap loads config, sets up logging and opens the database
func bootstrap() (*config.Config, *database.ConnectionPool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := Logger.SetupLogger(cfg.LogDir, cfg.LogLevel); err != nil {
		return nil, nil, err
	}

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create connection pool: %w", err)
	}
	return cfg, pool, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, pool, err := bootstrap()
	if err != nil {
		return err
	}
	defer Logger.Sync()
	defer pool.Close()

	db := pool.GetDB()
	if err := database.Migrate(db, cfg.DBMigrationMode); err != nil {
		return err
	}

	serviceContainer, err := container.NewServiceContainer(db, cfg, container.Options{})
	if err != nil {
		return fmt.Errorf("create service container: %w", err)
	}
	defer serviceContainer.Close()

	users := serviceContainer.GetService("user").(services.InterfaceUserService)
	created, err := users.EnsureAdmin(cfg.DefaultAdminUsername, cfg.DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		Logger.Info("created default admin account %s", cfg.DefaultAdminUsername)
	}

	r, cache := routes.SetupRouter(serviceContainer, cfg)
	defer cache.Close()

	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("server listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case sig := <-quit:
		Logger.Info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	Logger.Info("server stopped")
	return nil
}

func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		Logger.Info("database pool: %+v", stats)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("cpus=%d goroutines=%d alloc=%dMiB sys=%dMiB",
		runtime.NumCPU(), runtime.NumGoroutine(), m.Alloc/1024/1024, m.Sys/1024/1024)
}
