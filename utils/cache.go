package utils

import (
	"context"
	"log"
	"time"

	"careflow/config"

	"github.com/go-redis/redis/v8"
)

// CheckoutCacheClient holds resumable checkout sessions.
var CheckoutCacheClient *redis.Client

// InitCache initializes the Redis client backing the checkout session store.
func InitCache() {
	CheckoutCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CheckoutCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Checkout Cache): %v", err)
	}
}

// GetCheckoutCacheClient returns the session cache client.
func GetCheckoutCacheClient() *redis.Client {
	if CheckoutCacheClient == nil {
		InitCache()
	}
	return CheckoutCacheClient
}
