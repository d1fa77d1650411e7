package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"theray/config"
	"theray/cron"
	"theray/database"
	providerRepo "theray/database/repository/provider"
	sessionRepo "theray/database/repository/session"
	"theray/handlers"
	"theray/middleware"
	"theray/routes"
	"theray/services/scheduling"
	"theray/services/tasks"
	"theray/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	// repositories.
	db := database.DB()
	sessions, err := sessionRepo.NewMongoSessionRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize session repository: %v", err)
	}
	providers, err := providerRepo.NewMongoProviderRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize provider repository: %v", err)
	}

	// booking lock.
	var locker scheduling.Locker
	switch config.AppConfig.LockBackend {
	case "memory":
		logger.Sugar().Warn("main: using in-process booking locks; run a single instance only")
		locker = scheduling.NewMemoryLocker()
	default:
		lockTTL := config.AppConfig.LockTTL
		// the lease must outlive a conflict read plus an insert.
		if minTTL := 2*sessionRepo.OperationTimeout + time.Second; lockTTL < minTTL {
			logger.Sugar().Warnf("main: LOCK_TTL %s is too short for booking writes, using %s", lockTTL, minTTL)
			lockTTL = minTTL
		}
		locker = scheduling.NewRedisLocker(utils.GetLockClient(), lockTTL, logger)
	}

	// background counter retries.
	queueOpt := utils.QueueRedisOpt()
	taskClient := asynq.NewClient(queueOpt)
	defer taskClient.Close()
	worker := cron.InitCounterWorker(queueOpt, providers, logger)

	// services.
	sessionService := scheduling.NewSessionService(sessions, providers, locker, logger)
	sessionService.Retries = &tasks.CounterEnqueuer{Client: taskClient}
	sessionService.EnforceAvailability = config.AppConfig.EnforceAvailability

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, []*redis.Client{utils.GetLockClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	sessionHandler := handlers.NewSessionHandler(sessionService)
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(sessionHandler, config.AppConfig.JWTSecret))

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
