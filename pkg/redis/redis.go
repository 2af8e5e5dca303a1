package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	AllowVoiceCommand(ctx context.Context, userID string) (bool, error)
	SetCache(ctx context.Context, key string, value string, expiration time.Duration) error
	GetCache(ctx context.Context, key string) (string, error)
}

type redisClient struct {
	client      *redis.Client
	hourlyQuota int
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	quota, _ := strconv.Atoi(os.Getenv("VOICE_COMMANDS_PER_HOUR"))
	if quota <= 0 {
		quota = 120
	}

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, hourlyQuota: quota}
}

// AllowVoiceCommand counts commands per user in an hourly bucket. The first
// increment sets the expiry so the counter always dies with its hour.
func (r *redisClient) AllowVoiceCommand(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf("voice:quota:%s", userID)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error incrementing voice quota for %s: %v", userID, err))
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, time.Hour).Err(); err != nil {
			logrus.Error(fmt.Sprintf("Error setting voice quota expiry for %s: %v", userID, err))
		}
	}

	return count <= int64(r.hourlyQuota), nil
}

func (r *redisClient) SetCache(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting cache for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetCache(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}
