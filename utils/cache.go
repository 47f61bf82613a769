package utils

import (
	"context"
	"log"
	"time"

	"slotbook/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient backs both the schedule persistence key and the health monitor.
var RedisClient *redis.Client

// InitRedis initializes the Redis client from AppConfig and verifies connectivity.
func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
}

// GetRedisClient returns the shared Redis client.
func GetRedisClient() *redis.Client {
	if RedisClient == nil {
		InitRedis()
	}
	return RedisClient
}
