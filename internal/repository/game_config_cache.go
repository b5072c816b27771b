package repository

import (
	"balance_game_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

const gameConfigKeyPrefix = "game:config:"

// ErrCacheMiss is returned by GameConfigCache.Get when nothing is cached.
var ErrCacheMiss = errors.New("cache miss")

// GameConfigCache keeps serialized game configurations in Redis.
type GameConfigCache struct {
	Redis *redis.Client
	ttl   atomic.Int64
}

func NewGameConfigCache(rdb *redis.Client, ttl time.Duration) *GameConfigCache {
	c := &GameConfigCache{Redis: rdb}
	c.SetTTL(ttl)
	return c
}

func (c *GameConfigCache) Get(ctx context.Context, key string) (*model.GameConfig, error) {
	val, err := c.Redis.Get(ctx, gameConfigKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var cfg model.GameConfig
	if err := json.Unmarshal([]byte(val), &cfg); err != nil {
		return nil, err
	}
	cfg.Key = key
	return &cfg, nil
}

func (c *GameConfigCache) Set(ctx context.Context, cfg *model.GameConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, gameConfigKeyPrefix+cfg.Key, data, c.TTL()).Err()
}

// SetTTL changes the expiry applied to future writes.
func (c *GameConfigCache) SetTTL(ttl time.Duration) {
	c.ttl.Store(int64(ttl))
}

func (c *GameConfigCache) TTL() time.Duration {
	return time.Duration(c.ttl.Load())
}
