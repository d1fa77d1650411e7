// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"theray/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

var (
	// LockClient backs the per-provider booking locks.
	LockClient *redis.Client
)

// InitRedis initializes the Redis client used for booking locks.
func InitRedis() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LockClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Lock): %v", err)
	}
}

// GetLockClient returns the booking lock client.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitRedis()
	}
	return LockClient
}

// QueueRedisOpt returns the asynq connection options for the task queue DB.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
