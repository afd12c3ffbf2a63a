package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arunkx/skyfare/config"
	"github.com/arunkx/skyfare/internal/domain"
)

// RedisCache keeps the default flight listing warm between the simulator's
// mutations. Staleness is bounded by the TTL only.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context, sortBy, order string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(sortBy, order)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, sortBy, order string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(sortBy, order), payload, c.flightsTTL).Err()
}

func flightsKey(sortBy, order string) string {
	return "cache:flights:" + sortBy + ":" + order
}
