package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightservice/config"
	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches flight catalog reads. The catalog is an immutable
// external dataset, so cached entries can never go stale against the store.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetDirect(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, directKey(origin, dest, day, limit)).Bytes()
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

func (c *RedisCache) SetDirect(ctx context.Context, origin, dest string, day, limit int, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, directKey(origin, dest, day, limit), payload, c.ttl).Err()
}

func (c *RedisCache) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	data, err := c.client.Get(ctx, flightKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var f domain.Flight
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, f *domain.Flight) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightKey(f.ID), payload, c.ttl).Err()
}

func directKey(origin, dest string, day, limit int) string {
	return fmt.Sprintf("cache:direct:%s:%s:%d:%d", origin, dest, day, limit)
}

func flightKey(id int64) string {
	return fmt.Sprintf("cache:flight:%d", id)
}
