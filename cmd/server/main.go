// Package main runs the event ticketing HTTP server with graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hosseinmostafavi2079/roydadpro/config"
	"github.com/hosseinmostafavi2079/roydadpro/internal/auth"
	"github.com/hosseinmostafavi2079/roydadpro/internal/categories"
	"github.com/hosseinmostafavi2079/roydadpro/internal/events"
	"github.com/hosseinmostafavi2079/roydadpro/internal/instructors"
	"github.com/hosseinmostafavi2079/roydadpro/internal/organizations"
	"github.com/hosseinmostafavi2079/roydadpro/internal/router"
	"github.com/hosseinmostafavi2079/roydadpro/internal/telemetry"
	"github.com/hosseinmostafavi2079/roydadpro/internal/tickets"
	"github.com/hosseinmostafavi2079/roydadpro/internal/users"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/redis"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	media, mediaRoot, err := newMediaStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("media storage", zap.Error(err))
	}

	tp, err := telemetry.New(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.Fatal("telemetry", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	maxUpload := cfg.Media.MaxUploadBytes()

	// Users back both authentication and the users resource.
	userRepo := users.NewRepository(pool)
	authHandler := auth.NewHandler(userRepo, jwtService, auth.NewRedisBlacklist(rdb.Client), logger)

	orgRepo := organizations.NewRepository(pool)
	instructorRepo := instructors.NewRepository(pool)
	categoryRepo := categories.NewRepository(pool)
	eventRepo := events.NewRepository(pool)

	ticketRepo := tickets.NewRepository(pool)
	ticketService := tickets.NewService(ticketRepo, cfg.Tickets.CodeAttempts, tp.Tracer(), logger)

	handlers := router.Handlers{
		Auth:          authHandler,
		Organizations: organizations.NewHandler(orgRepo, media, maxUpload, logger),
		Users:         users.NewHandler(userRepo, logger),
		Instructors:   instructors.NewHandler(instructorRepo, media, maxUpload, logger),
		Categories:    categories.NewHandler(categoryRepo, logger),
		Events:        events.NewHandler(eventRepo, media, maxUpload, logger),
		Tickets:       tickets.NewHandler(ticketRepo, ticketService, logger),
	}
	engine := router.New(handlers, jwtService, userRepo, router.Options{
		ServiceName:        cfg.Telemetry.ServiceName,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		TokenRPM:           cfg.RateLimit.TokenRPM,
		MediaURL:           cfg.Media.URL,
		MediaRoot:          mediaRoot,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newMediaStore picks the upload backend. The returned root is non-empty only
// for local storage, which the router then serves under MEDIA_URL.
func newMediaStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, string, error) {
	switch cfg.Media.Backend {
	case "s3":
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.MediaBucket,
		}, logger)
		if err != nil {
			return nil, "", err
		}
		return s3, "", nil
	case "local", "":
		local, err := storage.NewLocal(cfg.Media.Root, cfg.Media.URL)
		if err != nil {
			return nil, "", err
		}
		logger.Info("media stored locally", zap.String("root", local.Root()), zap.String("url", cfg.Media.URL))
		return local, local.Root(), nil
	default:
		return nil, "", fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.Media.Backend)
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
