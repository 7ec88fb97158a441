package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rpawar/slotbook/config"
	"github.com/rpawar/slotbook/internal/domain"
)

type RedisCache struct {
	client   *redis.Client
	slotsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, slotsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		slotsTTL: slotsTTL,
	}
}

// GetDaySlots returns the cached booked-slot set for day, or nil on a miss.
func (c *RedisCache) GetDaySlots(ctx context.Context, day time.Time) ([]domain.SlotRef, error) {
	data, err := c.client.Get(ctx, daySlotsKey(day)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var slots []domain.SlotRef
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *RedisCache) SetDaySlots(ctx context.Context, day time.Time, slots []domain.SlotRef) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, daySlotsKey(day), payload, c.slotsTTL).Err()
}

func (c *RedisCache) InvalidateDay(ctx context.Context, day time.Time) error {
	return c.client.Del(ctx, daySlotsKey(day)).Err()
}

func daySlotsKey(day time.Time) string {
	return fmt.Sprintf("cache:slots:%s", day.Format("2006-01-02"))
}
