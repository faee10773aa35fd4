package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mealmatch/config"
	"mealmatch/docs"
	"mealmatch/internal/availability"
	"mealmatch/internal/cache"
	"mealmatch/internal/events"
	"mealmatch/internal/repository"
	"mealmatch/internal/service"
	"mealmatch/internal/transport/rest"
	"mealmatch/pkg/auth"
	"mealmatch/pkg/database"
	"mealmatch/pkg/logger"
	"mealmatch/pkg/validator"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title MealMatch Availability API
// @version 1.0
// @description Weekly meal availability and pair matching

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(logger.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Name:        cfg.Name,
		Version:     cfg.Version,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validator.RegisterGin(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("failed to load timezone", zap.Error(err))
	}

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("running database migrations")
	if err := database.RunMigrations(ctx, db, cfg.Postgres.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("migrations applied")

	var gridCache *cache.GridCache
	if cfg.Cache.Enabled {
		gridCache, err = cache.NewGridCache(cfg.Cache.Size, cfg.Cache.TTL, log)
		if err != nil {
			log.Fatal("failed to create grid cache", zap.Error(err))
		}
	} else {
		log.Warn("grid cache disabled")
	}

	publisher, err := events.NewPublisher(cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal("failed to connect to rabbitmq", zap.Error(err))
	}
	defer publisher.Close()

	tokens, err := auth.NewTokenManager(cfg.JWT.SigningKey, cfg.JWT.AccessTokenTTL)
	if err != nil {
		log.Fatal("failed to create token manager", zap.Error(err))
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:     repos,
		Logger:    log,
		Cache:     gridCache,
		Publisher: publisher,
		Clock:     availability.LocationClock(loc),
		Tokens:    tokens,
	})

	handler := rest.NewHandler(services, log, cfg)

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	router.GET("/swagger.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(docs.SwaggerInfo.ReadDoc()))
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr), zap.String("timezone", loc.String()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("failed to stop server", zap.Error(err))
	}

	log.Info("server stopped")
}
