package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/redis/go-redis/v9"
)

const flightsGenerationKey = "cache:flights:generation"

// RedisCache keeps flight listings per filter. Cached listings are never
// deleted one by one: bumping the generation makes all of them unreachable
// and the TTL reclaims them.
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

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns nil flights without an error on a cache miss. The
// generation it looked under is returned for a later SetFlights, so a listing
// read before an invalidation is never stored where readers will find it.
func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}
	data, err := c.client.Get(ctx, flightsKey(gen, filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, nil
		}
		return nil, gen, err
	}

	var flights []domain.FlightSummary
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, gen, err
	}
	return flights, gen, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.FlightSummary) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(gen, filter), payload, c.flightsTTL).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsGenerationKey).Err()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, flightsGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func flightsKey(gen int64, filter domain.FlightFilter) string {
	date := "-"
	if filter.DepartureDate != nil {
		date = filter.DepartureDate.Format(time.DateOnly)
	}
	route := "-"
	if filter.RouteID != nil {
		route = fmt.Sprintf("%d", *filter.RouteID)
	}
	return fmt.Sprintf("cache:flights:%d:date:%s:route:%s", gen, date, route)
}
