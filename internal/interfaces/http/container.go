package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsync "carelink/internal/application/sync"
	ticketUsecases "carelink/internal/application/ticket/usecases"
	userUsecases "carelink/internal/application/user/usecases"
	"carelink/internal/infrastructure/auth"
	"carelink/internal/infrastructure/cache"
	"carelink/internal/infrastructure/config"
	"carelink/internal/infrastructure/odoo"
	"carelink/internal/infrastructure/repository"
	"carelink/internal/infrastructure/scheduler"
	authhandler "carelink/internal/interfaces/http/handlers/auth"
	tickethandler "carelink/internal/interfaces/http/handlers/ticket"
	"carelink/internal/interfaces/http/middleware"
	"carelink/internal/interfaces/http/routes"
	"carelink/internal/shared/db"
	"carelink/internal/shared/logger"
)

// Container wires the infrastructure, use cases, handlers and the
// background sync scheduler, and owns their graceful shutdown.
type Container struct {
	engine    *gin.Engine
	cfg       *config.Config
	log       logger.Interface
	syncSvc   *appsync.SyncService
	scheduler *scheduler.TicketSyncScheduler
}

func NewContainer(cfg *config.Config, log logger.Interface, gormDB *gorm.DB, redisClient *redis.Client) *Container {
	// Repositories and transaction scope.
	ticketRepo := repository.NewTicketRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	txManager := db.NewTransactionManager(gormDB)

	// Remote helpdesk access.
	helpdesk := odoo.NewClient(&cfg.Helpdesk, log)
	contactStore := cache.NewContactCache(redisClient)
	contacts := appsync.NewContactResolver(helpdesk, contactStore, log)

	// Sync pipeline.
	importer := appsync.NewMessageImporter(messageRepo, helpdesk, log)
	reconciler := appsync.NewTicketReconciler(ticketRepo, helpdesk, importer, log)
	syncSvc := appsync.NewSyncService(ticketRepo, userRepo, helpdesk, reconciler, importer, contacts, txManager, log)

	syncScheduler := scheduler.NewTicketSyncScheduler(
		syncSvc,
		time.Duration(cfg.Sync.IntervalSeconds)*time.Second,
		log,
	)

	// Auth services.
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	// Use cases.
	createTicketUC := ticketUsecases.NewCreateTicketUseCase(ticketRepo, userRepo, helpdesk, contacts, txManager, log)
	getTicketUC := ticketUsecases.NewGetTicketUseCase(ticketRepo, messageRepo, syncSvc, log)
	listTicketsUC := ticketUsecases.NewListTicketsUseCase(ticketRepo, syncSvc, log)
	updateTicketUC := ticketUsecases.NewUpdateTicketUseCase(ticketRepo, messageRepo, helpdesk, txManager, log)
	deleteTicketUC := ticketUsecases.NewDeleteTicketUseCase(ticketRepo, helpdesk, txManager, log)
	addMessageUC := ticketUsecases.NewAddMessageUseCase(ticketRepo, messageRepo, userRepo, helpdesk, txManager, log)
	statsUC := ticketUsecases.NewGetTicketStatsUseCase(ticketRepo, log)
	syncTicketsUC := ticketUsecases.NewSyncTicketsUseCase(ticketRepo, syncSvc, log)
	registerUC := userUsecases.NewRegisterUserUseCase(userRepo, hasher, log)
	loginUC := userUsecases.NewLoginUserUseCase(userRepo, hasher, jwtSvc, log)

	// Handlers and routes.
	ticketHandler := tickethandler.NewTicketHandler(
		createTicketUC, getTicketUC, listTicketsUC, updateTicketUC,
		deleteTicketUC, addMessageUC, statsUC, syncTicketsUC, log,
	)
	authHandler := authhandler.NewAuthHandler(registerUC, loginUC, log)
	authMW := middleware.NewAuthMiddleware(jwtSvc, log)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	routes.RegisterAuthRoutes(api, authHandler)
	routes.RegisterTicketRoutes(api, ticketHandler, authMW)

	return &Container{
		engine:    engine,
		cfg:       cfg,
		log:       log,
		syncSvc:   syncSvc,
		scheduler: syncScheduler,
	}
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

func (c *Container) SyncService() *appsync.SyncService {
	return c.syncSvc
}

// StartBackground launches the periodic sync sweep.
func (c *Container) StartBackground(ctx context.Context) {
	c.scheduler.Start(ctx)
}

// Shutdown stops the scheduler, waiting for an in-flight sweep.
func (c *Container) Shutdown() {
	c.scheduler.Stop()
}
