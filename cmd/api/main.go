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

	"github.com/wms-platform/outbound-config-service/internal/api/handlers"
	"github.com/wms-platform/outbound-config-service/internal/application"
	mongoRepo "github.com/wms-platform/outbound-config-service/internal/infrastructure/mongodb"
	"github.com/wms-platform/outbound-config-service/pkg/cloudevents"
	"github.com/wms-platform/outbound-config-service/pkg/kafka"
	"github.com/wms-platform/outbound-config-service/pkg/logging"
	"github.com/wms-platform/outbound-config-service/pkg/metrics"
	"github.com/wms-platform/outbound-config-service/pkg/middleware"
	"github.com/wms-platform/outbound-config-service/pkg/mongodb"
	"github.com/wms-platform/outbound-config-service/pkg/tracing"
)

const serviceName = "outbound-config-service"

func main() {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(context.Background(), loadConfig(), appDependencies{}, signalCh); err != nil {
		os.Exit(1)
	}
}

type tracerProvider interface {
	Shutdown(ctx context.Context) error
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type appDependencies struct {
	initTracing        func(ctx context.Context, cfg *tracing.Config) (tracerProvider, error)
	newMetrics         func(cfg *metrics.Config) *metrics.Metrics
	newBusinessMetrics func(m *metrics.Metrics) *middleware.BusinessMetrics
	newMongoClient     func(ctx context.Context, cfg *mongodb.Config) (*mongodb.Client, error)
	newKafkaProducer   func(cfg *kafka.Config) *kafka.Producer
	newEventFactory    func(source string) *cloudevents.EventFactory
	newHTTPServer      func(addr string, handler http.Handler) httpServer
}

func defaultDependencies() appDependencies {
	return appDependencies{
		initTracing: func(ctx context.Context, cfg *tracing.Config) (tracerProvider, error) {
			return tracing.Initialize(ctx, cfg)
		},
		newMetrics: metrics.New,
		newBusinessMetrics: func(m *metrics.Metrics) *middleware.BusinessMetrics {
			return middleware.NewBusinessMetrics(m)
		},
		newMongoClient:   mongodb.NewClient,
		newKafkaProducer: kafka.NewProducer,
		newEventFactory:  cloudevents.NewEventFactory,
		newHTTPServer: func(addr string, handler http.Handler) httpServer {
			return &http.Server{
				Addr:         addr,
				Handler:      handler,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			}
		},
	}
}

func (d appDependencies) withDefaults() appDependencies {
	def := defaultDependencies()
	if d.initTracing == nil {
		d.initTracing = def.initTracing
	}
	if d.newMetrics == nil {
		d.newMetrics = def.newMetrics
	}
	if d.newBusinessMetrics == nil {
		d.newBusinessMetrics = def.newBusinessMetrics
	}
	if d.newMongoClient == nil {
		d.newMongoClient = def.newMongoClient
	}
	if d.newKafkaProducer == nil {
		d.newKafkaProducer = def.newKafkaProducer
	}
	if d.newEventFactory == nil {
		d.newEventFactory = def.newEventFactory
	}
	if d.newHTTPServer == nil {
		d.newHTTPServer = def.newHTTPServer
	}
	return d
}

func run(ctx context.Context, config *Config, deps appDependencies, signalCh <-chan os.Signal) error {
	deps = deps.withDefaults()
	if config == nil {
		config = loadConfig()
	}

	// Setup enhanced logger
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting outbound-config-service API")

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := deps.initTracing(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
		// Continue without tracing - don't exit
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Initialize Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := deps.newMetrics(metricsConfig)
	logger.Info("Metrics initialized")

	// Initialize business metrics helper
	businessMetrics := deps.newBusinessMetrics(m)

	// Initialize MongoDB
	client, err := deps.newMongoClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer client.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Initialize Kafka producer
	producer := deps.newKafkaProducer(config.Kafka)
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize CloudEvents factory
	eventFactory := deps.newEventFactory(cloudevents.SourceOutboundConfig)

	// Initialize repositories
	db := client.Database()
	ids := mongoRepo.NewIDAllocator(db)
	groupRepo := mongoRepo.NewInventoryGroupRepository(db, ids)
	sequenceRepo := mongoRepo.NewTaskSequenceRepository(db, ids)
	strategyRepo := mongoRepo.NewPickStrategyRepository(db, ids)
	huFormationRepo := mongoRepo.NewHUFormationRepository(db, ids)
	workOrderRepo := mongoRepo.NewWorkOrderManagementRepository(db, ids)
	allocationRepo := mongoRepo.NewStockAllocationRepository(db, ids)
	planningRepo := mongoRepo.NewTaskPlanningRepository(db, ids)
	executionRepo := mongoRepo.NewTaskExecutionRepository(db, ids)
	templateRepo := mongoRepo.NewTemplateRepository(db, ids)

	// Cross-entity dependency rules shared by the services
	depRules := application.NewDependencyRules(groupRepo, strategyRepo, planningRepo, allocationRepo)

	// Initialize application services
	groupService := application.NewInventoryGroupApplicationService(
		groupRepo, sequenceRepo, strategyRepo, huFormationRepo, workOrderRepo,
		allocationRepo, planningRepo, executionRepo, depRules, producer, eventFactory, logger,
	)
	sequenceService := application.NewTaskSequenceApplicationService(
		sequenceRepo, depRules, producer, eventFactory, logger,
	)
	strategyService := application.NewPickStrategyApplicationService(
		strategyRepo, huFormationRepo, workOrderRepo, depRules, producer, eventFactory, logger,
	)
	allocationService := application.NewStockAllocationApplicationService(
		allocationRepo, depRules, producer, eventFactory, logger,
	)
	planningService := application.NewTaskPlanningApplicationService(
		planningRepo, executionRepo, depRules, producer, eventFactory, logger,
	)
	wizardService := application.NewWizardApplicationService(
		groupRepo, sequenceRepo, strategyRepo, huFormationRepo, workOrderRepo,
		depRules, producer, eventFactory, logger,
	)
	templateService := application.NewTemplateApplicationService(
		templateRepo, groupRepo, sequenceRepo, strategyRepo, huFormationRepo, workOrderRepo,
		allocationRepo, planningRepo, executionRepo, producer, eventFactory, logger,
	)
	exportService := application.NewExportApplicationService(
		groupRepo, sequenceRepo, strategyRepo, huFormationRepo, workOrderRepo,
		allocationRepo, planningRepo, executionRepo, depRules, producer, eventFactory, logger,
	)

	// Setup Gin router with middleware
	router := gin.New()

	// Apply standard middleware (includes recovery, request ID, correlation, logging, error handling)
	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	// Add metrics middleware
	router.Use(middleware.MetricsMiddleware(m))

	// Add tracing middleware
	router.Use(middleware.SimpleTracingMiddleware(serviceName))

	// Handle 404 and 405 errors
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return client.HealthCheck(ctx)
	}))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API v1 routes
	apiV1 := router.Group("/api/v1")

	handlers.NewInventoryGroupHandlers(groupService, logger, businessMetrics).RegisterRoutes(apiV1)
	handlers.NewTaskSequenceHandlers(sequenceService, logger).RegisterRoutes(apiV1)
	handlers.NewPickStrategyHandlers(strategyService, logger).RegisterRoutes(apiV1)
	handlers.NewStockAllocationHandlers(allocationService, logger).RegisterRoutes(apiV1)
	handlers.NewTaskPlanningHandlers(planningService, logger).RegisterRoutes(apiV1)
	handlers.NewWizardHandlers(wizardService, logger, businessMetrics).RegisterRoutes(apiV1)
	handlers.NewTemplateHandlers(templateService, logger, businessMetrics).RegisterRoutes(apiV1)
	handlers.NewExportHandlers(exportService, logger).RegisterRoutes(apiV1)

	// Start server
	srv := deps.newHTTPServer(config.ServerAddr, router)

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	// Wait for interrupt signal
	if signalCh == nil {
		signalCh = make(chan os.Signal, 1)
	}
	select {
	case <-signalCh:
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8015"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "outbound_config_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:      []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ClientID:     "outbound-config-service",
			BatchSize:    100,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: -1,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
