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

	"materialAdvisor/app/echo-server/router"
	"materialAdvisor/business/material"
	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"
	"materialAdvisor/internal/middleware"
	"materialAdvisor/internal/repository/memory"
	psqlRepo "materialAdvisor/internal/repository/postgres"
	redisRepo "materialAdvisor/internal/repository/redis"
	"materialAdvisor/internal/rest"
	"materialAdvisor/pkg/config"
	"materialAdvisor/pkg/database"
	redisClient "materialAdvisor/pkg/database/redis"
	"materialAdvisor/pkg/logger"
	"materialAdvisor/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type stores struct {
	catalog  recommend.CatalogRepository
	feedback recommend.FeedbackRepository
	models   recommend.ModelRepository
	redis    *redis.Client
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Material Advisor", "version", cfg.App.Version)

	metrics.Init()

	st, err := initStores(cfg)
	if err != nil {
		logger.Fatal("Failed to init storage", "error", err)
	}
	if st.redis != nil {
		defer func() {
			if err := redisClient.CloseRedisClient(st.redis); err != nil {
				logger.Error("Redis close error", "error", err)
			}
		}()
	}

	// Init service
	recommendService := recommend.NewRecommendService(st.catalog, st.feedback, st.models, recommend.Config{
		Trainer: recommend.TrainerConfig{
			LearningRate:       cfg.Recommend.LearningRate,
			Epochs:             cfg.Recommend.Epochs,
			ConfidenceCeiling:  cfg.Recommend.ConfidenceCeiling,
			ConfidenceHalfSize: cfg.Recommend.ConfidenceHalfSize,
		},
		DefaultLimit:    cfg.Recommend.DefaultLimit,
		RetrainEvery:    cfg.Recommend.RetrainEvery,
		RetrainInterval: cfg.Recommend.RetrainInterval,
	})

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = recommendService.Init(initCtx)
	initCancel()
	if err != nil {
		logger.Fatal("Failed to init recommend engine", "error", err)
	}

	materialService := material.NewMaterialService(st.catalog)

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go recommendService.RunRetrainLoop(loopCtx, cfg.Recommend.RetrainInterval)

	// Init handler
	recommendHandler := rest.NewRecommendHandler(recommendService, cfg.Server.RequestTimeout)
	materialHandler := rest.NewMaterialHandler(materialService)
	modelAdminHandler := rest.NewModelAdminHandler(recommendService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendRoutes(api, recommendHandler)
	router.SetMaterialRoutes(api, materialHandler)
	router.SetModelAdminRoutes(api, modelAdminHandler)
	router.SetMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopLoop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func initStores(cfg *config.Config) (stores, error) {
	var (
		st  stores
		db  *gorm.DB
		err error
	)

	if cfg.NeedsPostgres() {
		db, err = database.InitPostgres(cfg)
		if err != nil {
			return st, err
		}
		if err := psqlRepo.AutoMigrate(db); err != nil {
			return st, err
		}
		logger.Info("Database connected successfully")
	}

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		materialRepo := psqlRepo.NewMaterialRepository(db)
		if cfg.Storage.SeedDemo {
			demo, err := memory.DemoCatalog()
			if err != nil {
				return st, err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err = materialRepo.Seed(ctx, demo)
			cancel()
			if err != nil {
				return st, err
			}
		}
		st.catalog = materialRepo
		st.feedback = psqlRepo.NewFeedbackRepository(db)
	default:
		var items []domain.MaterialRecord
		if cfg.Storage.SeedDemo {
			if items, err = memory.DemoCatalog(); err != nil {
				return st, err
			}
		}
		st.catalog = memory.NewCatalogRepository(items)
		st.feedback = memory.NewFeedbackRepository()
		logger.Warn("Using in-memory catalog and feedback log, data is lost on restart")
	}

	switch cfg.Storage.ModelStore {
	case config.BackendPostgres:
		st.models = psqlRepo.NewModelRepository(db)
	case config.BackendRedis:
		client, err := redisClient.NewRedisClient(cfg)
		if err != nil {
			return st, err
		}
		st.redis = client
		st.models = redisRepo.NewModelStore(client, cfg.Redis.ModelKey)
		logger.Info("Redis connected successfully")
	default:
		st.models = memory.NewModelRepository()
	}

	return st, nil
}
