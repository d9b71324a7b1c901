package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pos_commerce/config"
	"pos_commerce/internal/logger"
)

// GetRedisClient tạo client Redis. Trả về nil, nil khi không cấu hình Redis_Addr.
func GetRedisClient(c *config.Configuration) (*redis.Client, error) {
	if c.Redis_Address == "" {
		logger.GetAppLogger().Info("Redis chưa được cấu hình, dùng Mongo để sinh item_book_id")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:        c.Redis_Address,
		Password:    c.Redis_Password,
		DB:          c.Redis_DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	logger.GetAppLogger().WithField("addr", c.Redis_Address).Info("Successfully connected to Redis")
	return client, nil
}
