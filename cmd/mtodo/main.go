package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/mtodo/internal/config"
	"github.com/xxxsen/mtodo/internal/db"
	"github.com/xxxsen/mtodo/internal/handler"
	"github.com/xxxsen/mtodo/internal/middleware"
	"github.com/xxxsen/mtodo/internal/pkg/jwt"
	"github.com/xxxsen/mtodo/internal/repo"
	"github.com/xxxsen/mtodo/internal/service"
)

func main() {
	var configPath string
	var envFile string

	rootCmd := &cobra.Command{
		Use:   "mtodo",
		Short: "mtodo backend server",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run mtodo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(configPath, envFile)
			if err != nil {
				return err
			}
			ctx := context.Background()
			conn, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServer(cfg, conn)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(configPath, envFile)
			if err != nil {
				return err
			}
			conn, err := openDB(context.Background(), cfg)
			if err != nil {
				return err
			}
			logutil.GetLogger(context.Background()).Info("migrations applied", zap.String("driver", cfg.Database.Driver))
			return conn.Close()
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func setup(configPath, envFile string) (*config.Config, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	conn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return conn, nil
}

func runServer(cfg *config.Config, conn *sqlx.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	signer, err := jwt.NewSigner([]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	if err != nil {
		return fmt.Errorf("init token signer: %w", err)
	}

	userRepo := repo.NewUserRepo(conn)
	todoRepo := repo.NewTodoRepo(conn)

	authService := service.NewAuthService(userRepo, signer)
	todoService := service.NewTodoService(todoRepo)

	deps := handler.RouterDeps{
		Auth:         handler.NewAuthHandler(authService),
		Todos:        handler.NewTodoHandler(todoService),
		Health:       handler.NewHealthHandler(conn),
		Tokens:       signer,
		SigninWindow: time.Duration(cfg.SigninRateLimitMs) * time.Millisecond,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORS),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := engine.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logutil.GetLogger(context.Background()).Info("server stopping...")
		return nil
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	}
}
