package gamification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	model "github.com/glkeru/civicpoints/internal/models"
	redis "github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
}

func NewCacheService() (serv *CacheService, err error) {

	// config
	addr := os.Getenv("CIVIC_CACHE_URL")
	if addr == "" {
		return nil, fmt.Errorf("env CIVIC_CACHE_URL is not set")
	}
	user := os.Getenv("CIVIC_CACHE_USER")
	pwd := os.Getenv("CIVIC_CACHE_PWD")

	// redis
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(context.Background()).Err()
	if err != nil {
		return nil, err
	}

	return &CacheService{db}, nil
}

func (c *CacheService) GetSummary(ctx context.Context, user string) (summary model.AccountSummary, err error) {
	val, err := c.client.Get(ctx, user).Result()
	if err == redis.Nil {
		return model.AccountSummary{}, fmt.Errorf("summary %w", model.ErrNotFound)
	} else if err != nil {
		return model.AccountSummary{}, err
	}

	err = json.Unmarshal([]byte(val), &summary)
	if err != nil {
		return model.AccountSummary{}, err
	}
	return summary, nil
}

func (c *CacheService) SetSummary(ctx context.Context, user string, summary model.AccountSummary) (err error) {
	val, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	err = c.client.Set(ctx, user, val, 5*time.Minute).Err()
	if err != nil {
		return err
	}
	return nil
}

func (c *CacheService) InvalidateSummary(ctx context.Context, user string) error {
	err := c.client.Del(ctx, user).Err()
	if err != nil {
		return err
	}
	return nil
}
