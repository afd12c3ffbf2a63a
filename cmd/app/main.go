package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/arunkx/skyfare/config"
	"github.com/arunkx/skyfare/internal/bootstrap"
	"github.com/arunkx/skyfare/internal/cache"
	"github.com/arunkx/skyfare/internal/kafka"
	"github.com/arunkx/skyfare/internal/mockfeed"
	"github.com/arunkx/skyfare/internal/pricing"
	"github.com/arunkx/skyfare/internal/repository"
	"github.com/arunkx/skyfare/internal/service/booking"
	"github.com/arunkx/skyfare/internal/service/flights"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "app").Logger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := repository.InitializeSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("initialize schema")
	}

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	historyRepo := repository.NewFareHistoryRepository(pool)

	if cfg.Database.Seed {
		inserted, err := flightRepo.SeedIfEmpty(ctx, mockfeed.Flights(time.Now().UTC()))
		if err != nil {
			log.Fatal().Err(err).Msg("seed flights")
		}
		if inserted > 0 {
			log.Info().Int("flights", inserted).Msg("seeded mock schedule")
		}
	}

	engineCfg := pricing.DefaultConfig().WithOverrides(
		cfg.Pricing.PremiumCarriers,
		cfg.Pricing.BudgetCarriers,
		cfg.Pricing.MinMultiplier,
		cfg.Pricing.MaxMultiplier,
	)
	engine := pricing.NewEngine(engineCfg, pricing.NewRandomDemand(rand.New(rand.NewSource(time.Now().UnixNano()))))

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightService := flights.NewFlightService(flightRepo, historyRepo, engine, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		engine,
		log,
		booking.WithProducer(producer, cfg.Kafka.BookingTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	log.Info().Str("address", cfg.HTTP.Address).Msg("starting http server")
	if err := bootstrap.Run(ctx, cfg, flightService, bookingService); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func newPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pgxpool.NewWithConfig(ctx, poolCfg)
}
