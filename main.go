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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/warden-authz/warden/audit"
	"github.com/warden-authz/warden/cache"
	"github.com/warden-authz/warden/config"
	"github.com/warden-authz/warden/controller"
	"github.com/warden-authz/warden/dao"
	"github.com/warden-authz/warden/db"
	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/router"
	"github.com/warden-authz/warden/service"
	"github.com/warden-authz/warden/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Neo4j
	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	notificationService := util.NewNotificationService()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize the policy store and cache
	policyDAO := dao.NewPolicyDAO(db.Neo4jDriver)
	policyCache, err := cache.NewPolicyCache(
		db.RedisClient,
		policyDAO,
		config.GetDuration("redis.defaultCacheTTL"),
		[]byte(config.GetString("redis.encryptionKey")),
	)
	if err != nil {
		logger.Fatal("Failed to initialize policy cache", zap.Error(err))
	}

	// Initialize the authorization service
	authzService := service.NewAuthorizationService(
		policyDAO,
		policyCache,
		notificationService,
		auditService,
		eventBus,
		config.GetString("authz.staffSuffix"),
	)

	// Initialize controllers and routes
	controllers := controller.InitControllers(authzService, controller.NewAuditController(auditService))

	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		config.GetInt("ratelimit.requests"),
		config.GetDuration("ratelimit.window"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
