package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kerjalink/kerjalink/internal/pkg/config"
	"github.com/kerjalink/kerjalink/internal/pkg/database"
	"github.com/kerjalink/kerjalink/internal/pkg/health"
	"github.com/kerjalink/kerjalink/internal/pkg/logger"
	"github.com/kerjalink/kerjalink/internal/pkg/middleware"
	nsqpkg "github.com/kerjalink/kerjalink/internal/pkg/nsq"
	"github.com/kerjalink/kerjalink/internal/pkg/server"
	"github.com/kerjalink/kerjalink/services/identity/gateway"
	"github.com/kerjalink/kerjalink/services/identity/handler"
	httpHandler "github.com/kerjalink/kerjalink/services/identity/handler/http"
	"github.com/kerjalink/kerjalink/services/identity/repository"
	"github.com/kerjalink/kerjalink/services/identity/usecase"
)

func main() {
	appName := "identity-service"
	configs := config.InitConfig(os.Getenv("CONFIG_PATH"))

	zapLogger, err := logger.NewZapLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	// Initialize NSQ producer for out-of-band OTP dispatch
	producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
	}

	// Initialize repository
	identityRepo := repository.NewIdentityRepo(configs, postgresClient.GetDB(), redisClient)

	// Initialize gateway
	identityGW := gateway.NewIdentityGW(producer)

	// Initialize usecase
	identityUC := usecase.NewIdentityUC(identityRepo, identityRepo, identityRepo, identityGW, configs)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(identityUC)
	accountHandler := httpHandler.NewAccountHandler(identityUC)
	identityHandler := handler.NewHandler(authHandler, accountHandler, identityRepo, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.EchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName)
	identityHandler.RegisterRoutes(e)

	// Start server with graceful shutdown; stores close after the listener drains
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	srv.RegisterCleanup(func(ctx context.Context) error {
		producer.Stop()
		return nil
	})
	srv.RegisterCleanup(func(ctx context.Context) error {
		return redisClient.Close()
	})
	srv.RegisterCleanup(func(ctx context.Context) error {
		return postgresClient.Close()
	})

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server exited with error", logger.Err(err))
	}
}
