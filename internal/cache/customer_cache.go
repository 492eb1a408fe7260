package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unclebandit/simple-crm/internal/model"
)

const (
	customerListKey = "crm:customers:all"
	customerGenKey  = "crm:customers:gen"
)

// CustomerCache stores the full customer collection served by GET /customers.
// Every Invalidate bumps a generation; SetAll only writes a collection read under
// the generation that is still current.
type CustomerCache interface {
	GetAll(ctx context.Context) ([]model.Customer, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetAll(ctx context.Context, customers []model.Customer, gen int64) error
	Invalidate(ctx context.Context) error
}

// RedisCustomerCache keeps the collection as one JSON document.
type RedisCustomerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis client and verifies connectivity.
func New(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

func NewRedisCustomerCache(client *redis.Client, ttl time.Duration) *RedisCustomerCache {
	return &RedisCustomerCache{client: client, ttl: ttl}
}

// GetAll returns the cached collection; the bool is false on a miss.
func (c *RedisCustomerCache) GetAll(ctx context.Context) ([]model.Customer, bool, error) {
	raw, err := c.client.Get(ctx, customerListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}

	var customers []model.Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, false, fmt.Errorf("cache: decode: %w", err)
	}
	return customers, true, nil
}

// Generation returns the current invalidation counter, 0 before the first Invalidate.
func (c *RedisCustomerCache) Generation(ctx context.Context) (int64, error) {
	return generation(ctx, c.client)
}

// SetAll stores customers unless an Invalidate happened since gen was read.
func (c *RedisCustomerCache) SetAll(ctx context.Context, customers []model.Customer, gen int64) error {
	raw, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, customerListKey, raw, c.ttl)
			return nil
		})
		return err
	}, customerGenKey)

	// the generation moved between the check and EXEC
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}

func (c *RedisCustomerCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, customerGenKey)
		pipe.Del(ctx, customerListKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache: invalidate: %w", err)
	}
	return nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, r getter) (int64, error) {
	gen, err := r.Get(ctx, customerGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: generation: %w", err)
	}
	return gen, nil
}

// NopCustomerCache is used when no Redis address is configured.
type NopCustomerCache struct{}

func (NopCustomerCache) GetAll(context.Context) ([]model.Customer, bool, error) {
	return nil, false, nil
}

func (NopCustomerCache) Generation(context.Context) (int64, error) {
	return 0, nil
}

func (NopCustomerCache) SetAll(context.Context, []model.Customer, int64) error {
	return nil
}

func (NopCustomerCache) Invalidate(context.Context) error {
	return nil
}

var (
	_ CustomerCache = (*RedisCustomerCache)(nil)
	_ CustomerCache = NopCustomerCache{}
)
