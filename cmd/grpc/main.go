package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/metrics"
	"github.com/fekuna/omnipos-storefront-service/internal/session"
	"github.com/fekuna/omnipos-storefront-service/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront-service/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"

	catListenerPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/listener"
	catRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront-service/internal/catalog/usecase"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/gateway"
	checkoutUCPkg "github.com/fekuna/omnipos-storefront-service/internal/checkout/usecase"

	sfH "github.com/fekuna/omnipos-storefront-service/internal/storefront/handler"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.NewTranslator()
	if err != nil {
		appLogger.Fatal("Could not load locales", zap.Error(err))
	}
	if cfg.Catalog.LocalesDir != "" {
		files, _ := filepath.Glob(filepath.Join(cfg.Catalog.LocalesDir, "*.json"))
		for _, f := range files {
			if err := translator.Load(f); err != nil {
				appLogger.Warn("Failed to load locale file", zap.String("file", f), zap.Error(err))
			}
		}
	}

	// 4. Load Pricing
	pricing, err := config.LoadPricing(cfg.Catalog.PricingFile)
	if err != nil {
		appLogger.Fatal("Could not load pricing", zap.Error(err))
	}
	appLogger.Info("Loaded pricing", zap.String("file", cfg.Catalog.PricingFile))

	// 5. Initialize Catalog Provider
	var catRepo catalog.Repository
	switch cfg.Catalog.Source {
	case "elastic":
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Elasticsearch", zap.Error(err))
		}
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		catRepo = catRepoPkg.NewESRepository(esClient, 0)
	default:
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		catRepo = catRepoPkg.NewPGRepository(db)
	}

	// 6. Initialize Redis
	var snapshotCache cache.Store
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, catalog cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			snapshotCache = redisClient
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 7. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepo, snapshotCache, cfg.Catalog.CacheTTL, appLogger)

	var orderEvents checkout.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.CatalogTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()

		kafkaProducer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrderTopic,
		})
		defer kafkaProducer.Close()
		orderEvents = kafkaProducer
		appLogger.Info("Connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("catalog_topic", cfg.Kafka.CatalogTopic),
			zap.String("order_topic", cfg.Kafka.OrderTopic),
		)

		catListener := catListenerPkg.NewCatalogListener(kafkaConsumer, catUC, appLogger)
		go catListener.Start(ctx)
	}

	orderGateway := gateway.NewHTTPGateway(cfg.Checkout.GatewayURL, cfg.Checkout.GatewayAPIKey, cfg.Checkout.GatewayTimeout, appLogger)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(pricing.Checkout, orderGateway, orderEvents, appLogger)

	sessions := session.NewManager(pricing.Coupons, cfg.Session.IdleTTL)
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	// 8. Initialize Handlers
	sfHandler := sfH.NewStorefrontHandler(catUC, checkoutUC, sessions, pricing.Table, translator, appLogger)

	// 9. Start Metrics Server
	metricsSrv := &http.Server{
		Addr:              normalizePort(cfg.Server.MetricsPort),
		Handler:           metricsMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("metrics server failed", zap.Error(err))
		}
	}()

	// 10. Start gRPC Server
	port := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			metrics.UnaryServerInterceptor(),
			auth.UnaryServerInterceptor(),
		),
	)

	// Register Services
	storefrontv1.RegisterStorefrontServiceServer(grpcServer, sfHandler)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(storefrontv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	appLogger.Info("Starting gRPC server", zap.String("port", port), zap.String("catalog_source", cfg.Catalog.Source))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthSrv.Shutdown()
	cancel()
	grpcServer.GracefulStop()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = metricsSrv.Shutdown(shutdownCtx)
	appLogger.Info("Server stopped")
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func normalizePort(port string) string {
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
