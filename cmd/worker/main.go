package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/arunkx/skyfare/config"
	"github.com/arunkx/skyfare/internal/email"
	"github.com/arunkx/skyfare/internal/kafka"
	"github.com/arunkx/skyfare/internal/pricing"
	"github.com/arunkx/skyfare/internal/repository"
	"github.com/arunkx/skyfare/internal/service/market"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "worker").Logger()

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

	engineCfg := pricing.DefaultConfig().WithOverrides(
		cfg.Pricing.PremiumCarriers,
		cfg.Pricing.BudgetCarriers,
		cfg.Pricing.MinMultiplier,
		cfg.Pricing.MaxMultiplier,
	)
	engine := pricing.NewEngine(engineCfg, nil)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	opts := []market.SimulatorOption{
		market.WithProducer(producer, cfg.Kafka.FareTopic),
	}
	if cfg.Simulator.IntervalSeconds > 0 {
		opts = append(opts, market.WithInterval(time.Duration(cfg.Simulator.IntervalSeconds)*time.Second))
	}
	if cfg.Simulator.SampleSize > 0 {
		opts = append(opts, market.WithSampleSize(cfg.Simulator.SampleSize))
	}
	if cfg.Simulator.MaxSeatDelta > 0 {
		opts = append(opts, market.WithSeatDelta(cfg.Simulator.MaxSeatDelta))
	}
	simulator := market.NewSimulator(repository.NewMarketRepository(pool), engine, log, opts...)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Warn().Err(err).Msg("decode booking event")
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Warn().Err(err).Msg("consumer stopped")
		}
	}()

	simulator.Run(ctx)
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
