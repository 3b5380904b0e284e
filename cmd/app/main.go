package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New(config.LogConfig{}).WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Log)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, flight listings will not be cached")
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()

	flightService := flights.NewFlightService(repository.NewFlightRepository(pool), redisCache, log)
	orderService := orders.NewOrderService(
		repository.NewOrderRepository(pool),
		log,
		orders.WithCache(redisCache),
		orders.WithProducer(producer, cfg.Kafka.OrdersTopic, cfg.Kafka.NotificationsTopic),
	)
	catalogService := catalog.NewCatalogService(repository.NewCatalogRepository(pool))

	router := api.NewRouter(
		api.RouterConfig{JWTSecret: cfg.Auth.JWTSecret, Swagger: cfg.HTTP.Swagger},
		api.Services{Flights: flightService, Orders: orderService, Catalog: catalogService},
		log,
	)

	if err := bootstrap.Run(ctx, cfg.HTTP, router, log); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
