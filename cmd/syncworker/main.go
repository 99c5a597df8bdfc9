package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	appsync "carelink/internal/application/sync"
	"carelink/internal/infrastructure/cache"
	"carelink/internal/infrastructure/config"
	"carelink/internal/infrastructure/database"
	"carelink/internal/infrastructure/migration"
	"carelink/internal/infrastructure/odoo"
	"carelink/internal/infrastructure/repository"
	"carelink/internal/infrastructure/scheduler"
	"carelink/internal/shared/db"
	"carelink/internal/shared/logger"
)

// Standalone sweep worker, for running the reconciliation loop
// separately from the API server.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting ticket sync worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := migration.Run(database.Get()); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to Redis", "error", err)
	}

	gormDB := database.Get()
	ticketRepo := repository.NewTicketRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	txManager := db.NewTransactionManager(gormDB)

	helpdesk := odoo.NewClient(&cfg.Helpdesk, log)
	contacts := appsync.NewContactResolver(helpdesk, cache.NewContactCache(redisClient), log)
	importer := appsync.NewMessageImporter(messageRepo, helpdesk, log)
	reconciler := appsync.NewTicketReconciler(ticketRepo, helpdesk, importer, log)
	syncSvc := appsync.NewSyncService(ticketRepo, userRepo, helpdesk, reconciler, importer, contacts, txManager, log)

	sweeper := scheduler.NewTicketSyncScheduler(
		syncSvc,
		time.Duration(cfg.Sync.IntervalSeconds)*time.Second,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down ticket sync worker")
	sweeper.Stop()
	log.Infow("ticket sync worker exited gracefully")
}
