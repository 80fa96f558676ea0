package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ec5/ec5-api/internal/config"
	"github.com/ec5/ec5-api/internal/domain"
	"github.com/ec5/ec5-api/internal/infrastructure/dynamo"
	"github.com/ec5/ec5-api/internal/infrastructure/google"
	jwtinfra "github.com/ec5/ec5-api/internal/infrastructure/jwt"
	"github.com/ec5/ec5-api/internal/infrastructure/mail"
	"github.com/ec5/ec5-api/internal/infrastructure/opencage"
	"github.com/ec5/ec5-api/internal/infrastructure/postgres"
	redisinfra "github.com/ec5/ec5-api/internal/infrastructure/redis"
	s3infra "github.com/ec5/ec5-api/internal/infrastructure/s3"
	"github.com/ec5/ec5-api/internal/infrastructure/sns"
	"github.com/ec5/ec5-api/internal/pkg/logger"
	transporthttp "github.com/ec5/ec5-api/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.NewZap(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	awsCfg, err := dynamo.LoadAWSConfig(ctx, cfg)
	if err != nil {
		zlog.Fatal("aws config", zap.Error(err))
	}

	// Critical log entries are also published to SNS when a topic is configured.
	var alerts logger.AlertPublisher
	if cfg.AlertTopicARN != "" {
		alerts = sns.NewAlertPublisher(awsCfg, cfg.AlertTopicARN)
	}
	appLog := logger.New(zlog, alerts)

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redisinfra.NewClient(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLog.Critical("redis unavailable, flashed errors will be dropped", map[string]any{"addr": cfg.Redis.Addr, "error": err})
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, appLog)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		zlog.Fatal("jwt provider", zap.Error(err))
	}

	mailer, err := mail.NewTransport(cfg.Mail, appLog)
	if err != nil {
		zlog.Fatal("mail transport", zap.Error(err))
	}

	deps := &transporthttp.Deps{
		Entries:       postgres.NewEntryRepo(db, domain.EntryKindTop),
		BranchEntries: postgres.NewEntryRepo(db, domain.EntryKindBranch),
		Projects:      postgres.NewProjectRepo(db),
		Users:         postgres.NewUserRepo(db),
		Flash:         redisinfra.NewFlashStore(redisClient, cfg.Redis.FlashTTL),
		Media:         s3infra.NewMediaStore(s3infra.NewClient(awsCfg, cfg), cfg.MediaBucket),
		GeocodeCache:  dynamo.NewGeocodeCache(dynamoClient, cfg.DynamoTables.GeocodeCache),
		Geocoder:      opencage.NewClient(cfg.Geocoder.URL, cfg.Geocoder.APIKey, cfg.Geocoder.Timeout),
		Mailer:        mailer,
		Tokens:        jwtProvider,
		Log:           appLog,
	}
	// Google sign-in is optional.
	if cfg.GoogleClientID != "" {
		deps.Google = google.NewVerifier(cfg.GoogleClientID)
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("server starting", map[string]any{"port": cfg.AppPort, "env": cfg.AppEnv})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("forced shutdown", zap.Error(err))
	}
	appLog.Info("server stopped", nil)
}
