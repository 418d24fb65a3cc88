package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/ManuelReschke/PlanChange/internal/pkg/env"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	mu     sync.Mutex
)

// SetupCache initializes the connection to the Redis compatible cache server.
// A failed ping is only logged; callers degrade to uncached lookups.
func SetupCache(ctx context.Context) *redis.Client {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       env.GetEnvInt("CACHE_DB", 0),
	})

	// Test the connection
	pong, err := c.Ping(ctx).Result()
	if err != nil {
		fiberlog.Warnf("Could not connect to cache at %s:%s: %v", host, port, err)
	} else {
		fiberlog.Infof("Successfully connected to cache: %s", pong)
	}

	mu.Lock()
	client = c
	mu.Unlock()
	return c
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	mu.Lock()
	c := client
	mu.Unlock()
	if c == nil {
		return SetupCache(context.Background())
	}
	return c
}
