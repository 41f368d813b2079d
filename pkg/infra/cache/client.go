package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	AckDedupeTTLName = "ack_dedupe"
)

// Channel names a redis pub/sub channel.
type Channel string

const EventsChannel Channel = "actiongate:events"

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	RedisClient() *redis.Client
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap
	Close() error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

type client struct {
	redisClient *redis.Client
	ttlMaps     sync.Map
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return &client{
		redisClient: redisClient,
	}, nil
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	m := NewTTLMap(ttl)
	c.ttlMaps.Store(name, m)
	return m
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		if m, ok := value.(*TTLMap); ok {
			return m
		}
	}
	return nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}
