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

	"go.uber.org/zap"

	"github.com/sagelms/sage/api/audit"
	"github.com/sagelms/sage/api/auth"
	"github.com/sagelms/sage/api/authz"
	"github.com/sagelms/sage/api/config"
	"github.com/sagelms/sage/api/controller"
	"github.com/sagelms/sage/api/dao"
	"github.com/sagelms/sage/api/db"
	"github.com/sagelms/sage/api/kv"
	"github.com/sagelms/sage/api/llm"
	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/router"
	"github.com/sagelms/sage/api/service"
	"github.com/sagelms/sage/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Postgres
	if err := db.InitPostgres(); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()

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

	// Shared infrastructure
	store := kv.NewRedisStore(db.RedisClient, config.GetDuration("redis.readTimeout"))
	cacheService := util.NewCacheService(store, config.GetDuration("redis.defaultCacheTTL"))
	registry := auth.NewRevocationRegistry(store)
	tokens := auth.NewTokenManager(config.GetString("jwt.secret"), config.GetDuration("jwt.expiresIn"))
	completer := llm.NewOpenAIClient(
		config.GetString("openai.apiKey"),
		config.GetString("openai.model"),
		config.GetDuration("openai.requestTimeout"),
	)
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db.DB)
	courseDAO := dao.NewCourseDAO(db.DB)
	chatHistoryDAO := dao.NewChatHistoryDAO(db.DB)

	// Initialize services
	authService := service.NewAuthService(userDAO, tokens, registry, auditService)
	aiService := service.NewAIService(
		authz.NewGate(),
		completer,
		courseDAO,
		chatHistoryDAO,
		auditService,
		config.GetInt("openai.maxContextChars"),
	)
	courseService := service.NewCourseService(courseDAO, cacheService, eventBus)

	// Initialize controllers
	controllers := controller.NewControllers(
		controller.NewAuthController(authService),
		controller.NewAIController(aiService),
		controller.NewCourseController(courseService),
		controller.NewAuditController(auditService),
	)

	engine := router.SetupRouter(controllers, authService, store, 100, time.Minute)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
