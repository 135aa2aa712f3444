package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightservice/api"
	"github.com/Domenick1991/flightservice/config"
	"github.com/Domenick1991/flightservice/internal/bootstrap"
	"github.com/Domenick1991/flightservice/internal/cache"
	"github.com/Domenick1991/flightservice/internal/kafka"
	"github.com/Domenick1991/flightservice/internal/repository"
	"github.com/Domenick1991/flightservice/internal/service/accounts"
	"github.com/Domenick1991/flightservice/internal/service/search"
	"github.com/Domenick1991/flightservice/internal/service/trips"
	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/Domenick1991/flightservice/internal/storage/postgres"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN()))
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	catalogTTL := time.Duration(cfg.Catalog.CacheTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, catalogTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(txManager)
	reservationRepo := repository.NewReservationRepository(txManager)
	userRepo := repository.NewUserRepository(txManager)

	registry := session.NewRegistry()
	accountService := accounts.NewAccountService(userRepo)
	searchService := search.NewSearchService(flightRepo, redisCache, logger)
	tripService := trips.NewTripService(
		txManager,
		reservationRepo,
		flightRepo,
		userRepo,
		producer,
		cfg.Kafka.ReservationsTopic,
		logger,
		trips.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		trips.WithFlightCache(redisCache),
	)

	router := api.NewRouter(registry, accountService, searchService, tripService)

	logger.Info("starting flight service", zap.String("address", cfg.HTTP.Address))
	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
