package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seafuel/service-voyage/internal/adapters/amap"
	"github.com/seafuel/service-voyage/internal/adapters/pdf"
	"github.com/seafuel/service-voyage/internal/application"
	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/domain/fuel"
	"github.com/seafuel/service-voyage/internal/domain/route"
	userDomain "github.com/seafuel/service-voyage/internal/domain/user"
	"github.com/seafuel/service-voyage/internal/events"
	"github.com/seafuel/service-voyage/internal/handler"
	"github.com/seafuel/service-voyage/internal/platform/auth"
	"github.com/seafuel/service-voyage/internal/platform/database"
	"github.com/seafuel/service-voyage/internal/platform/health"
	"github.com/seafuel/service-voyage/internal/platform/kafka"
	"github.com/seafuel/service-voyage/internal/platform/logger"
	"github.com/seafuel/service-voyage/internal/platform/middleware"
	"github.com/seafuel/service-voyage/internal/repository"
	"github.com/seafuel/service-voyage/web"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "service-voyage"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("routes_backend", cfg.Routes.Backend),
		zap.String("auth_backend", cfg.Auth.Backend),
	)

	// Connect to database only when a store needs it
	var (
		db     *gorm.DB
		pinger health.Pinger
	)
	if cfg.UsesPostgres() {
		db, err = database.Connect(cfg.DBConfig, log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if cfg.IsDevelopment() {
			if err := repository.AutoMigrate(db); err != nil {
				log.Fatal("failed to run auto-migration", zap.Error(err))
			}
			log.Info("database migration completed (dev auto-migrate)")
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("failed to get sql db", zap.Error(err))
		}
		defer func() { _ = sqlDB.Close() }()
		pinger = sqlDB
	}

	// Initialize repositories
	var routeRepo route.Repository
	switch cfg.Routes.Backend {
	case config.BackendPostgres:
		routeRepo = repository.NewGormRouteRepository(db)
	default:
		routeRepo = repository.NewFileRouteRepository(cfg.Routes.Dir)
	}

	var userRepo userDomain.Repository
	switch cfg.Auth.Backend {
	case config.BackendPostgres:
		userRepo = repository.NewGormUserRepository(db)
	default:
		staticUsers, err := repository.NewStaticUserRepository(cfg.Auth.Users, 0)
		if err != nil {
			log.Fatal("failed to load users", zap.Error(err))
		}
		if staticUsers.Len() == 0 {
			log.Warn("no users configured; set auth.users or VOYAGE_AUTH_ADMIN_USER and VOYAGE_AUTH_ADMIN_PASSWORD")
		}
		userRepo = staticUsers
	}

	// Initialize JWT manager
	if cfg.Auth.InsecureSecret {
		log.Warn("auth.jwt_secret is not set; signing tokens with the built-in development secret")
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize Kafka producer
	var publisher kafka.Publisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = kafka.NewProducer(cfg.Kafka.Brokers, log)
		log.Info("publishing activity events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer func() { _ = publisher.Close() }()
	emitter := events.NewEmitter(publisher, cfg.Kafka.Topic, log)

	// Initialize adapters
	renderer, err := pdf.NewRenderer(cfg.Report)
	if err != nil {
		log.Fatal("failed to initialize report renderer", zap.Error(err))
	}
	if cfg.Amap.APIKey == "" {
		log.Warn("amap.api_key is empty; map and reverse geocoding will not work")
	}
	geocoder := amap.NewClient(cfg.Amap, log.Named("amap"))

	// Initialize application services
	routeService, err := application.NewRouteService(route.NewResolver(routeRepo), cfg.Routes, log)
	if err != nil {
		log.Fatal("invalid route configuration", zap.Error(err))
	}
	fuelService := application.NewFuelService(fuel.NewLinearSavingStrategy(), emitter, log)
	reportService := application.NewReportService(fuelService, routeService, renderer, cfg.Report.Title, emitter, log)
	authService := application.NewAuthService(userRepo, jwtManager, emitter, log)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	health.NewHandler(pinger, serviceName).RegisterRoutes(router)

	// Register routes
	root := &router.RouterGroup
	handler.NewAuthHandler(authService, !cfg.IsDevelopment()).RegisterRoutes(root)
	handler.NewPageHandler(routeService, cfg.Amap.APIKey).RegisterRoutes(root, jwtManager)
	handler.NewRouteHandler(routeService).RegisterRoutes(root, jwtManager)
	handler.NewFuelHandler(fuelService).RegisterRoutes(root, jwtManager)
	handler.NewReportHandler(reportService).RegisterRoutes(root, jwtManager)
	handler.NewGeocodeHandler(geocoder).RegisterRoutes(root, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
